package commands

import (
	"github.com/spf13/cobra"

	"github.com/imgbake/imgbake/cmd/imgbake/handlers"
)

// Doctor returns the command for checking build prerequisites.
//
// It verifies that packer and the storage CLI matching the release path
// scheme are installed. With --release_path omitted, both storage CLIs are
// reported as optional.
func Doctor() *cobra.Command {
	var (
		releasePath string
		configPath  string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that required tools are installed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(handlers.DoctorRequest{
				ReleasePath: releasePath,
				ConfigPath:  configPath,
				JSON:        jsonOutput,
			})
		},
	}

	cmd.Flags().StringVar(&releasePath, "release_path", "", "Release path the next build will use")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}
