package media

import (
	"context"
	"io"

	"andaman_market/internal/shared"
)

// BlobStore persists bytes at a derived path and returns the public URL.
// Implementations never overwrite in place; uniqueness comes from the
// path's timestamp token.
type BlobStore interface {
	Put(ctx context.Context, path, contentType string, r io.Reader) (string, error)
	Name() string
}

// Select picks the backend once from deployment config: an object-store
// bucket wins over the local filesystem. There is no per-request override.
func Select(ctx context.Context, cfg shared.StorageConfig) (BlobStore, error) {
	if cfg.Bucket != "" {
		return NewObjectStore(ctx, cfg.Bucket, cfg.PublicDomain)
	}
	return NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL), nil
}
