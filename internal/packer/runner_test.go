package packer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	args := BuildArgs("image.pkr.hcl", []string{"-var", "foo=1", "-var", "bar=2"})
	assert.Equal(t, []string{"build", "-var", "foo=1", "-var", "bar=2", "image.pkr.hcl"}, args)
}

func TestBuildArgs_NoVars(t *testing.T) {
	assert.Equal(t, []string{"build", "image.pkr.hcl"}, BuildArgs("image.pkr.hcl", nil))
}

// saveAndRestoreRunCmd restores the command runner after the test.
func saveAndRestoreRunCmd(t *testing.T) {
	orig := runCmd
	t.Cleanup(func() { runCmd = orig })
}

func TestCLIRunner_Build(t *testing.T) {
	saveAndRestoreRunCmd(t)

	var gotArgs []string
	runCmd = func(cmd *exec.Cmd) error {
		gotArgs = cmd.Args
		_, err := io.WriteString(cmd.Stdout, "==> builds finished\n")
		return err
	}

	var echo bytes.Buffer
	r := NewCLIRunner(&echo)
	out, err := r.Build(context.Background(), "image.pkr.hcl", []string{"-var", "foo=1"})

	require.NoError(t, err)
	assert.Equal(t, []string{"packer", "build", "-var", "foo=1", "image.pkr.hcl"}, gotArgs)
	assert.Equal(t, "==> builds finished\n", out)
	assert.Equal(t, "==> builds finished\n", echo.String(), "output is echoed while captured")
}

func TestCLIRunner_BuildFailure(t *testing.T) {
	saveAndRestoreRunCmd(t)

	runCmd = func(cmd *exec.Cmd) error {
		_, _ = io.WriteString(cmd.Stdout, "partial output\n")
		return errors.New("exit status 1")
	}

	r := &CLIRunner{}
	out, err := r.Build(context.Background(), "image.pkr.hcl", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "packer build failed")
	assert.Equal(t, "partial output\n", out, "partial output is still captured")
}
