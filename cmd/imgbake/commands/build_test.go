package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saveAndRestoreCLIArgs saves and restores the raw argument source.
func saveAndRestoreCLIArgs(t *testing.T) {
	orig := cliArgs
	t.Cleanup(func() { cliArgs = orig })
}

func TestBuild_Flags(t *testing.T) {
	cmd := Build()

	for _, name := range []string{"release_path", "template", "installer", "config", "only", "force"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "expected flag %s", name)
	}

	flag := cmd.Flags().Lookup("release_path")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Annotations[cobra.BashCompOneRequiredFlag], "true",
		"release_path must be required")
}

func TestBuild_AllowsUnknownFlags(t *testing.T) {
	cmd := Build()
	assert.True(t, cmd.FParseErrWhitelist.UnknownFlags,
		"arbitrary --name[=value] flags are forwarded to packer")
}

func TestPassthroughArgs(t *testing.T) {
	saveAndRestoreCLIArgs(t)

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "tokens after the subcommand",
			args:     []string{"build", "--release_path=gs://r/v1", "--foo", "1"},
			expected: []string{"--release_path=gs://r/v1", "--foo", "1"},
		},
		{
			name: "nothing after the subcommand",
			args: []string{"build"},
		},
		{
			name: "subcommand absent",
			args: []string{"--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cliArgs = func() []string { return tt.args }
			got := passthroughArgs(Build())
			if len(tt.expected) == 0 {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
