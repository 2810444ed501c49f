package installer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/imgbake/imgbake/internal/config"
	s3client "github.com/imgbake/imgbake/internal/platform/s3"
	"github.com/imgbake/imgbake/internal/util/retry"
)

// objectStore is the subset of the S3 client the fetcher needs.
type objectStore interface {
	GetObjectToFile(ctx context.Context, bucket, key, dest string) error
}

// SDKFetcher downloads the installer from S3 through the AWS SDK instead of
// the aws CLI. Transient failures are retried with exponential backoff; a
// missing object is not retried.
type SDKFetcher struct {
	store  objectStore
	bucket string
	key    string
}

// NewSDKFetcher creates an SDK fetcher for the object within the release
// path.
func NewSDKFetcher(releasePath, object string, cfg *config.S3) (*SDKFetcher, error) {
	bucket, prefix, err := s3client.ParseURI(releasePath)
	if err != nil {
		return nil, err
	}

	region := cfg.Region
	if region == "" {
		region = config.DefaultS3Region
	}
	client, err := s3client.NewClient(context.Background(), cfg.Endpoint, region, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, err
	}

	return &SDKFetcher{
		store:  client,
		bucket: bucket,
		key:    path.Join(prefix, object),
	}, nil
}

// Fetch downloads the object to dest and makes it executable.
func (f *SDKFetcher) Fetch(ctx context.Context, dest string) error {
	log.Printf("Fetching installer s3://%s/%s via SDK...", f.bucket, f.key)

	err := retry.WithExponentialBackoff(ctx, func() error {
		err := f.store.GetObjectToFile(ctx, f.bucket, f.key, dest)
		if s3client.IsNotFound(err) {
			return retry.Fatal(err)
		}
		return err
	}, retry.WithMaxRetries(3), retry.WithInitialDelay(2*time.Second))
	if err != nil {
		return fmt.Errorf("failed to fetch s3://%s/%s: %w", f.bucket, f.key, err)
	}

	if err := os.Chmod(dest, 0o755); err != nil {
		return fmt.Errorf("failed to make installer executable: %w", err)
	}
	return nil
}
