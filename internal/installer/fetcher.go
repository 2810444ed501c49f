// Package installer retrieves the installer script from cloud storage.
//
// The release path scheme selects the fetch strategy: gs:// goes through the
// gsutil CLI, s3:// goes through the aws CLI or, when configured, the AWS
// SDK. The fetched script is made executable so packer can bake it straight
// into the image.
package installer

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/imgbake/imgbake/internal/config"
)

// Fetcher downloads the installer script to a local path.
type Fetcher interface {
	Fetch(ctx context.Context, dest string) error
}

// Scheme returns the storage scheme of a release path: "gs", "s3", or ""
// when the scheme is not a supported storage scheme.
func Scheme(releasePath string) string {
	switch {
	case strings.HasPrefix(releasePath, "gs://"):
		return "gs"
	case strings.HasPrefix(releasePath, "s3://"):
		return "s3"
	default:
		return ""
	}
}

// ForURI selects a fetch strategy for the release path. s3cfg switches the
// s3:// path to the SDK fetcher when UseSDK is set; it is ignored for gs://.
// An unsupported scheme is rejected here, before any subprocess runs.
func ForURI(releasePath, object string, s3cfg *config.S3) (Fetcher, error) {
	switch Scheme(releasePath) {
	case "gs":
		return &CLIFetcher{
			Command: []string{"gsutil", "cp"},
			Source:  joinURI(releasePath, object),
		}, nil
	case "s3":
		if s3cfg != nil && s3cfg.UseSDK {
			return NewSDKFetcher(releasePath, object, s3cfg)
		}
		return &CLIFetcher{
			Command: []string{"aws", "s3", "cp"},
			Source:  joinURI(releasePath, object),
		}, nil
	default:
		return nil, fmt.Errorf("release path must be a gs:// or s3:// URI, got %q", releasePath)
	}
}

// runCommand executes a storage CLI command and returns its combined output.
// Replaceable in tests.
var runCommand = func(ctx context.Context, argv []string) ([]byte, error) {
	// #nosec G204 - argv is assembled from the fixed CLI command and the
	// validated release path, not raw user input
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	return cmd.CombinedOutput()
}

// CLIFetcher shells out to a storage copy command (gsutil cp or aws s3 cp).
type CLIFetcher struct {
	// Command is the copy command prefix, e.g. ["gsutil", "cp"].
	Command []string

	// Source is the full object URI to copy.
	Source string
}

// Fetch copies the source object to dest and makes it executable.
func (f *CLIFetcher) Fetch(ctx context.Context, dest string) error {
	log.Printf("Fetching installer %s...", f.Source)

	argv := append(append([]string(nil), f.Command...), f.Source, dest)
	out, err := runCommand(ctx, argv)
	if err != nil {
		msg := string(bytes.TrimSpace(out))
		if msg != "" {
			return fmt.Errorf("%s failed: %w: %s", f.Command[0], err, msg)
		}
		return fmt.Errorf("%s failed: %w", f.Command[0], err)
	}

	if err := os.Chmod(dest, 0o755); err != nil {
		return fmt.Errorf("failed to make installer executable: %w", err)
	}
	return nil
}

// joinURI appends an object name to a release path URI.
func joinURI(releasePath, object string) string {
	return strings.TrimSuffix(releasePath, "/") + "/" + object
}
