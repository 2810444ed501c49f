// Package handlers implements the execution logic behind the CLI commands.
package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imgbake/imgbake/internal/builder"
	"github.com/imgbake/imgbake/internal/config"
	"github.com/imgbake/imgbake/internal/ui"
)

// BuildRequest carries the flags and pass-through arguments of one build
// invocation.
type BuildRequest struct {
	ReleasePath     string
	Template        string
	InstallerObject string
	ConfigPath      string
	Only            []string
	Force           bool

	// RawArgs are the raw command-line tokens after the subcommand. Claimed
	// flags are stripped before the rest become packer variables.
	RawArgs []string
}

// claimedFlags are the build command's own flags, removed from the raw
// arguments so they are not forwarded to packer.
var claimedFlags = []string{"release_path", "template", "installer", "config", "only", "force"}

// imageBuilder is the part of builder.Builder the handler drives. An
// interface so tests can substitute the builder.
type imageBuilder interface {
	RemoveRawArg(name string)
	AddVariable(name, value string)
	CreateImage(ctx context.Context) error
	Output() string
	NextSteps() string
}

// Factory function variables - can be replaced in tests.
var (
	newBuilder = func(opts builder.Options, rawArgs []string, hooks builder.Hooks) imageBuilder {
		return builder.New(opts, rawArgs, hooks)
	}
	loadConfig = config.Load
)

// Build bakes a machine image from the given release.
//
// Configuration file values provide defaults; flags override them. All
// remaining --name[=value] tokens on the command line become packer
// variables. On success the next-steps text from the configuration is
// printed.
func Build(ctx context.Context, req BuildRequest) error {
	cfg, err := loadConfig(req.ConfigPath)
	if err != nil {
		return err
	}

	opts := builder.Options{
		ReleasePath:     req.ReleasePath,
		Template:        firstNonEmpty(req.Template, cfg.Template),
		InstallerObject: firstNonEmpty(req.InstallerObject, cfg.InstallerObject),
		Only:            req.Only,
		Force:           req.Force,
		S3:              cfg.S3,
	}
	if cfg.Packer != nil {
		if len(opts.Only) == 0 {
			opts.Only = cfg.Packer.Only
		}
		opts.Force = opts.Force || cfg.Packer.Force
	}

	var hooks builder.Hooks
	if cfg.NextSteps != "" {
		steps := cfg.NextSteps
		hooks.NextSteps = func() string { return steps }
	}

	b := newBuilder(opts, req.RawArgs, hooks)
	for _, name := range claimedFlags {
		b.RemoveRawArg(name)
	}
	for name, value := range cfg.Variables {
		b.AddVariable(name, value)
	}

	log.Printf("Baking image from %s with template %s...", opts.ReleasePath, opts.Template)

	if err := b.CreateImage(ctx); err != nil {
		return err
	}

	fmt.Println("Image baked successfully!")
	if steps := b.NextSteps(); steps != "" {
		fmt.Print(ui.RenderNextSteps(steps, !ui.IsTerminal()))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
