package commands

import (
	"github.com/spf13/cobra"

	"github.com/imgbake/imgbake/cmd/imgbake/handlers"
)

// Init returns the command for interactively creating an imgbake.yaml.
func Init() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Where to write the config file (default imgbake.yaml)")

	return cmd
}
