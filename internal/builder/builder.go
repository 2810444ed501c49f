package builder

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/imgbake/imgbake/internal/config"
	"github.com/imgbake/imgbake/internal/installer"
	"github.com/imgbake/imgbake/internal/packer"
)

// InstallerVarName is the reserved packer variable that carries the path of
// the downloaded installer script.
const InstallerVarName = "installer_path"

// Options carries the parsed configuration for a single image bake.
type Options struct {
	// ReleasePath is the gs:// or s3:// URI of the release to install.
	ReleasePath string

	// Template is the packer template passed to packer build.
	Template string

	// InstallerObject is the name of the installer script within ReleasePath.
	InstallerObject string

	// Only restricts the build to the named packer sources.
	Only []string

	// Force tells packer to overwrite existing build artifacts.
	Force bool

	// S3 configures the SDK-based fetch path for s3:// release paths.
	// Nil means the aws CLI is used instead.
	S3 *config.S3
}

// Hooks are the specialization points of the bake lifecycle. A nil field
// selects the default behavior described on each hook.
type Hooks struct {
	// PrepareInstaller populates an executable installer script at path.
	// Default: fetch ReleasePath/InstallerObject with gsutil or aws s3 cp
	// depending on the URI scheme.
	PrepareInstaller func(ctx context.Context, path string) error

	// Prepare runs additional setup after the installer has been fetched
	// and before the variable map is finalized. Default: nothing.
	Prepare func(ctx context.Context) error

	// Cleanup runs additional teardown after the build, on success and
	// failure alike. Default: nothing.
	Cleanup func(ctx context.Context) error

	// NextSteps returns follow-up instructions printed after a successful
	// build. Default: none.
	NextSteps func() string

	// RunBuildTool invokes the build tool with the serialized variable and
	// option arguments and returns its captured stdout. Default: run packer
	// build, echoing output to the terminal. Intended for tests.
	RunBuildTool func(ctx context.Context, template string, varArgs []string) (string, error)
}

// Builder owns the variable map, the raw pass-through arguments, and the
// temporary installer file for one image bake. A Builder is single-use and
// not safe for concurrent use; CreateImage runs every step to completion
// before the next begins.
type Builder struct {
	opts  Options
	hooks Hooks

	rawArgs []string
	vars    map[string]string

	installerPath string
	output        string
}

// New creates a Builder for the given options. rawArgs are the unconsumed
// command-line tokens that will be merged into the packer variable map; the
// zero Hooks value selects default behavior everywhere.
func New(opts Options, rawArgs []string, hooks Hooks) *Builder {
	return &Builder{
		opts:    opts,
		hooks:   hooks,
		rawArgs: append([]string(nil), rawArgs...),
		vars:    make(map[string]string),
	}
}

// AddVariable inserts or overwrites a variable passed to packer.
func (b *Builder) AddVariable(name, value string) {
	b.vars[name] = value
}

// Variables returns a copy of the current variable map.
func (b *Builder) Variables() map[string]string {
	vars := make(map[string]string, len(b.vars))
	for name, value := range b.vars {
		vars[name] = value
	}
	return vars
}

// RawArgs returns a copy of the remaining raw arguments.
func (b *Builder) RawArgs() []string {
	return append([]string(nil), b.rawArgs...)
}

// Output returns the captured packer stdout. Empty until CreateImage has
// completed successfully.
func (b *Builder) Output() string {
	return b.output
}

// NextSteps returns the follow-up instructions for a successful build.
func (b *Builder) NextSteps() string {
	if b.hooks.NextSteps != nil {
		return b.hooks.NextSteps()
	}
	return ""
}

// CreateImage runs the full lifecycle: prepare, build, cleanup. Cleanup runs
// exactly once regardless of where a failure occurred, and the original
// failure is returned afterwards. On success the packer output is available
// through Output.
func (b *Builder) CreateImage(ctx context.Context) (err error) {
	defer b.cleanup(ctx)

	if err := b.prepare(ctx); err != nil {
		return err
	}

	out, err := b.runBuildTool(ctx)
	if err != nil {
		return err
	}
	b.output = out
	return nil
}

// prepare allocates the installer temp file, fetches the installer, runs the
// Prepare hook, and merges the remaining raw arguments into the variable map.
func (b *Builder) prepare(ctx context.Context) error {
	f, err := os.CreateTemp("", "imgbake-installer-*")
	if err != nil {
		return fmt.Errorf("failed to create installer temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close installer temp file: %w", err)
	}
	b.installerPath = f.Name()
	b.vars[InstallerVarName] = b.installerPath

	if err := b.prepareInstaller(ctx, b.installerPath); err != nil {
		return err
	}

	if b.hooks.Prepare != nil {
		if err := b.hooks.Prepare(ctx); err != nil {
			return err
		}
	}

	return b.mergeRawArgs()
}

func (b *Builder) prepareInstaller(ctx context.Context, path string) error {
	if b.hooks.PrepareInstaller != nil {
		return b.hooks.PrepareInstaller(ctx, path)
	}

	fetcher, err := installer.ForURI(b.opts.ReleasePath, b.opts.InstallerObject, b.opts.S3)
	if err != nil {
		return &ConfigError{Message: err.Error()}
	}
	if err := fetcher.Fetch(ctx, path); err != nil {
		return External("storage copy", err)
	}
	return nil
}

// runBuildTool serializes the variable map and invokes packer. Any failure
// in this step is tagged as an external tool failure so the top level exits
// without a diagnostic dump.
func (b *Builder) runBuildTool(ctx context.Context) (string, error) {
	varArgs := b.packerVarArgs()
	if b.opts.Force {
		varArgs = append(varArgs, "-force")
	}
	if len(b.opts.Only) > 0 {
		varArgs = append(varArgs, "-only="+strings.Join(b.opts.Only, ","))
	}

	if b.hooks.RunBuildTool != nil {
		out, err := b.hooks.RunBuildTool(ctx, b.opts.Template, varArgs)
		if err != nil {
			return "", External("build tool", err)
		}
		return out, nil
	}

	runner := packer.NewCLIRunner(os.Stdout)
	out, err := runner.Build(ctx, b.opts.Template, varArgs)
	if err != nil {
		return "", External("packer build", err)
	}
	return out, nil
}

// cleanup runs the Cleanup hook and removes the installer temp file. File
// removal is best effort; a leaked temp file is not worth failing a build
// that already succeeded.
func (b *Builder) cleanup(ctx context.Context) {
	if b.hooks.Cleanup != nil {
		if err := b.hooks.Cleanup(ctx); err != nil {
			log.Printf("Cleanup hook failed: %v", err)
		}
	}
	if b.installerPath != "" {
		_ = os.Remove(b.installerPath)
	}
}
