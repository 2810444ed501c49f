package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration from path, falling back to DefaultPath when
// path is empty. A missing file is not an error: the command line alone is a
// complete configuration, so defaults are returned instead.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg, err := LoadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			cfg = &Config{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Template == "" {
		cfg.Template = DefaultTemplate
	}
	if cfg.InstallerObject == "" {
		cfg.InstallerObject = DefaultInstallerObject
	}
	if cfg.S3 != nil && cfg.S3.Region == "" {
		cfg.S3.Region = DefaultS3Region
	}
}

// Write marshals the configuration and writes it to path. Used by the init
// wizard.
func Write(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
