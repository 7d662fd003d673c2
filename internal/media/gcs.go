package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ObjectStore persists media in a cloud bucket. Object stores have no
// directories, so the key is the logical path with the leading separator
// stripped, and no provisioning step exists.
type ObjectStore struct {
	bucket       *gcs.BucketHandle
	publicDomain string
}

func NewObjectStore(ctx context.Context, bucket, publicDomain string, opts ...option.ClientOption) (*ObjectStore, error) {
	cl, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("media: object store client: %w", err)
	}
	return &ObjectStore{
		bucket:       cl.Bucket(bucket),
		publicDomain: strings.TrimRight(publicDomain, "/"),
	}, nil
}

func (s *ObjectStore) Name() string { return "object-store" }

func (s *ObjectStore) Put(ctx context.Context, path, contentType string, r io.Reader) (string, error) {
	key := strings.TrimPrefix(path, "/")
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	// The public domain is a deployment constant; switching it means
	// redeploying, not a per-request override.
	return s.publicDomain + "/" + key, nil
}
