package config

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

var (
	errReleasePathRequired = errors.New("release path is required")
	errReleasePathScheme   = errors.New("release path must start with gs:// or s3://")
	errTemplateRequired    = errors.New("template is required")
)

// WizardResult carries the answers collected by RunWizard. ReleasePath is
// collected for the next-steps text only; it stays a per-run flag and is not
// written into the config file.
type WizardResult struct {
	ReleasePath string
	Config      *Config
}

// RunWizard walks the user through an interactive setup and returns the
// resulting configuration. The caller decides where to write it.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Config: &Config{
			Template:        DefaultTemplate,
			InstallerObject: DefaultInstallerObject,
		},
	}
	var useSDK bool

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Release path").
				Description("gs:// or s3:// URI of the release to install").
				Placeholder("gs://my-releases/1.0.0").
				Value(&result.ReleasePath).
				Validate(validateReleasePath),
			huh.NewInput().
				Title("Packer template").
				Description("Template file passed to packer build").
				Value(&result.Config.Template).
				Validate(validateTemplate),
			huh.NewInput().
				Title("Installer object").
				Description("Name of the installer script within the release path").
				Value(&result.Config.InstallerObject),
		).Title("Image Bake"),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Fetch s3:// releases with the AWS SDK?").
				Description("Uses the default AWS credential chain instead of the aws CLI").
				Value(&useSDK),
		).Title("Storage"),
	).RunWithContext(ctx)
	if err != nil {
		return nil, err
	}

	if useSDK {
		result.Config.S3 = &S3{UseSDK: true, Region: DefaultS3Region}
	}

	applyDefaults(result.Config)
	if err := result.Config.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// validateReleasePath checks the release path scheme.
func validateReleasePath(s string) error {
	if s == "" {
		return errReleasePathRequired
	}
	if !strings.HasPrefix(s, "gs://") && !strings.HasPrefix(s, "s3://") {
		return errReleasePathScheme
	}
	return nil
}

func validateTemplate(s string) error {
	if s == "" {
		return errTemplateRequired
	}
	return nil
}
