// Package storage puts upload blobs into an object store. Three drivers share
// the ObjectStore interface: a local directory, any S3 endpoint through the
// AWS SDK, and MinIO through its own client.
package storage

import (
	"context"
	"fmt"
	"io"

	"items-backend/internal/config"
)

type ObjectStore interface {
	// Put stores size bytes from r under key and returns the URL clients use
	// to fetch the object.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Delete removes key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// BucketEnsurer is implemented by drivers backed by a bucket that may have
// to be created first.
type BucketEnsurer interface {
	EnsureBucket(ctx context.Context) error
}

func New(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocalStore(cfg.Path, cfg.PublicURL)
	case "s3":
		return NewS3Store(ctx, cfg)
	case "minio":
		return NewMinioStore(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
