package builder

import (
	"sort"
	"strings"
)

const flagMarker = "--"

// RemoveRawArg removes every occurrence of --name (in both the --name=value
// and the bare --name forms) from the raw argument list, together with the
// following token when that token is not itself a flag. Removing a name that
// is not present is a no-op.
//
// Flags the CLI layer has already claimed are removed this way so they do not
// leak into the packer variable map.
func (b *Builder) RemoveRawArg(name string) {
	flag := flagMarker + name
	var result []string
	remaining := b.rawArgs
	for len(remaining) > 0 {
		arg := remaining[0]
		remaining = remaining[1:]
		if arg != flag && !strings.HasPrefix(arg, flag+"=") {
			result = append(result, arg)
			continue
		}
		if len(remaining) > 0 && !strings.HasPrefix(remaining[0], flagMarker) {
			// Drop the value token for this argument as well.
			remaining = remaining[1:]
		}
	}
	b.rawArgs = result
}

// mergeRawArgs folds the remaining raw arguments into the variable map.
// Every token must be a --name or --name=value flag; a bare --name consumes
// the following token as its value when that token is not itself a flag,
// otherwise the value is the empty string.
func (b *Builder) mergeRawArgs() error {
	remaining := b.rawArgs
	for len(remaining) > 0 {
		arg := remaining[0]
		remaining = remaining[1:]
		if !strings.HasPrefix(arg, flagMarker) {
			return Configf("unexpected argument %q", arg)
		}
		arg = arg[len(flagMarker):]
		if name, value, ok := strings.Cut(arg, "="); ok && name != "" {
			b.vars[name] = value
			continue
		}
		b.vars[arg] = ""
		if len(remaining) > 0 && !strings.HasPrefix(remaining[0], flagMarker) {
			b.vars[arg] = remaining[0]
			remaining = remaining[1:]
		}
	}
	return nil
}

// packerVarArgs serializes the variable map into packer's -var name=value
// argument form. Keys are sorted so the command line is stable across runs.
func (b *Builder) packerVarArgs() []string {
	names := make([]string, 0, len(b.vars))
	for name := range b.vars {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]string, 0, 2*len(names))
	for _, name := range names {
		args = append(args, "-var", name+"="+b.vars[name])
	}
	return args
}
