// Package config defines the imgbake configuration model.
//
// The [Config] struct is the canonical representation of a bake setup: the
// packer template, the installer object name, default packer variables, and
// the optional SDK-based S3 fetch settings. Configuration is read from an
// imgbake.yaml file; everything in it can also be supplied or overridden on
// the command line.
package config

import "fmt"

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "imgbake.yaml"

// Defaults applied after loading.
const (
	DefaultTemplate        = "image.pkr.hcl"
	DefaultInstallerObject = "install.sh"
	DefaultS3Region        = "us-east-1"
)

// Config is the top-level imgbake configuration.
type Config struct {
	// Template is the packer template passed to packer build.
	Template string `yaml:"template"`

	// InstallerObject is the name of the installer script object within
	// the release path.
	InstallerObject string `yaml:"installer_object"`

	// Variables are default packer variables, overridable per run via
	// --name=value flags.
	Variables map[string]string `yaml:"variables"`

	// NextSteps is an optional block of follow-up instructions printed
	// after a successful build.
	NextSteps string `yaml:"next_steps"`

	// Packer holds extra options forwarded to packer build.
	Packer *Packer `yaml:"packer"`

	// S3 enables fetching s3:// release paths through the AWS SDK instead
	// of the aws CLI.
	S3 *S3 `yaml:"s3"`
}

// Packer configures the packer build invocation beyond the variable map.
type Packer struct {
	// Only restricts the build to the named sources (packer -only).
	Only []string `yaml:"only"`

	// Force tells packer to overwrite existing build artifacts (-force).
	Force bool `yaml:"force"`
}

// S3 configures the SDK fetch path for s3:// release paths.
type S3 struct {
	// UseSDK switches the s3:// fetch from the aws CLI to the AWS SDK.
	UseSDK bool `yaml:"use_sdk"`

	// Endpoint overrides the S3 endpoint for S3-compatible object stores.
	// Empty means the default AWS endpoint.
	Endpoint string `yaml:"endpoint"`

	// Region is the bucket region.
	Region string `yaml:"region"`

	// AccessKey and SecretKey are static credentials. When empty the
	// default AWS credential chain is used.
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Template == "" {
		return fmt.Errorf("template must not be empty")
	}
	if c.InstallerObject == "" {
		return fmt.Errorf("installer_object must not be empty")
	}
	if c.S3 != nil {
		if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
			return fmt.Errorf("s3 access_key and secret_key must be set together")
		}
	}
	return nil
}
