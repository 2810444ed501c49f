package handlers

import (
	"context"
	"fmt"

	"github.com/imgbake/imgbake/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	runWizard   = config.RunWizard
	writeConfig = config.Write
)

// Init interactively creates a config file. output defaults to
// config.DefaultPath when empty.
func Init(ctx context.Context, output string) error {
	if output == "" {
		output = config.DefaultPath
	}

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("setup wizard failed: %w", err)
	}

	if err := writeConfig(result.Config, output); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", output)
	fmt.Printf("Bake an image with: imgbake build --release_path %s\n", result.ReleasePath)
	return nil
}
