// Package packer invokes the packer CLI to build machine images.
package packer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
)

// Runner invokes the build tool with a template and serialized -var
// arguments, returning the captured stdout.
type Runner interface {
	Build(ctx context.Context, template string, varArgs []string) (string, error)
}

// runCmd starts and waits for an assembled command. Replaceable in tests.
var runCmd = func(cmd *exec.Cmd) error {
	return cmd.Run()
}

// CLIRunner runs packer build as a subprocess.
type CLIRunner struct {
	// Echo receives the build output as it is produced, in addition to the
	// capture. Nil disables echoing.
	Echo io.Writer
}

// NewCLIRunner creates a runner that echoes build output to w.
func NewCLIRunner(w io.Writer) *CLIRunner {
	return &CLIRunner{Echo: w}
}

// BuildArgs assembles the packer build argument list.
func BuildArgs(template string, varArgs []string) []string {
	args := make([]string, 0, len(varArgs)+2)
	args = append(args, "build")
	args = append(args, varArgs...)
	args = append(args, template)
	return args
}

// Build runs packer build with the given variables and template. Stdout is
// captured and returned; stderr goes to the terminal.
func (r *CLIRunner) Build(ctx context.Context, template string, varArgs []string) (string, error) {
	args := BuildArgs(template, varArgs)
	log.Printf("Running packer build %s...", template)

	// #nosec G204 - args are assembled from validated flags and variables
	cmd := exec.CommandContext(ctx, "packer", args...)

	var stdout bytes.Buffer
	if r.Echo != nil {
		cmd.Stdout = io.MultiWriter(&stdout, r.Echo)
	} else {
		cmd.Stdout = &stdout
	}
	cmd.Stderr = os.Stderr

	if err := runCmd(cmd); err != nil {
		return stdout.String(), fmt.Errorf("packer build failed: %w", err)
	}
	return stdout.String(), nil
}
