package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/imgbake/imgbake/cmd/imgbake/handlers"
)

// cliArgs returns the raw command line. Replaceable in tests.
var cliArgs = func() []string { return os.Args[1:] }

// Build returns the command for baking a machine image.
//
// The command requires --release_path and accepts arbitrary additional
// --name[=value] flags, each forwarded to packer as a template variable.
//
// Flags:
//
//	--release_path: gs:// or s3:// URI of the release to install (required)
//	--template: packer template to build (default from config)
//	--installer: installer object name within the release path
//	--config: path to the imgbake.yaml config file
func Build() *cobra.Command {
	var (
		releasePath string
		template    string
		installer   string
		configPath  string
		only        []string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Bake a machine image from a release",
		Long: `Bake a machine image with packer.

The installer script is fetched from the release path and passed to packer
as the installer_path variable. Additional --name[=value] flags are passed
through to packer as template variables; see the "variables" section of the
template for what it accepts.`,
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Build(cmd.Context(), handlers.BuildRequest{
				ReleasePath:     releasePath,
				Template:        template,
				InstallerObject: installer,
				ConfigPath:      configPath,
				Only:            only,
				Force:           force,
				RawArgs:         passthroughArgs(cmd),
			})
		},
	}

	cmd.Flags().StringVar(&releasePath, "release_path", "", "URI of the release on cloud storage (gs:// or s3://)")
	cmd.Flags().StringVar(&template, "template", "", "Packer template to build")
	cmd.Flags().StringVar(&installer, "installer", "", "Installer object name within the release path")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Restrict the build to the named packer sources")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing build artifacts")
	_ = cmd.MarkFlagRequired("release_path")

	return cmd
}

// passthroughArgs returns the raw tokens that followed the subcommand on the
// command line. cobra has already consumed the flags it knows about; the
// builder strips those again via RemoveRawArg and forwards the rest to
// packer as variables.
func passthroughArgs(cmd *cobra.Command) []string {
	args := cliArgs()
	for i, arg := range args {
		if arg == cmd.Name() {
			return append([]string(nil), args[i+1:]...)
		}
	}
	return nil
}
