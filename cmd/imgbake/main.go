// Package main is the entry point for the imgbake CLI.
//
// imgbake bakes machine images with packer. It fetches an installer script
// from cloud storage (gs:// or s3://), forwards arbitrary --name[=value]
// flags to packer as template variables, runs the build, and cleans up
// after itself.
//
// Commands: build, init, doctor, version, completion.
//
// For detailed usage information, run:
//
//	imgbake --help
package main

import (
	"fmt"
	"os"

	"github.com/imgbake/imgbake/cmd/imgbake/commands"
	"github.com/imgbake/imgbake/internal/builder"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		// A failure inside an external tool (the storage copy or packer
		// itself) has already written its own diagnostics to the terminal.
		// Exit non-zero without repeating them.
		if builder.IsExternal(err) {
			os.Exit(1)
		}
		if builder.IsConfig(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		// Anything else is unexpected; surface the full error chain.
		fmt.Fprintf(os.Stderr, "internal error: %+v\n", err)
		os.Exit(1)
	}
}
