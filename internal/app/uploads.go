package app

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"andaman_market/internal/adapters/observability"
	"andaman_market/internal/domain"
	"andaman_market/internal/media"
)

// UploadFile is one multipart file as handed to the orchestrator.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadService drives the per-file upload loop against whichever backend
// was selected at startup. Files are written strictly in order so a failure
// can name the exact file; writes already done stay put (at-least-once, no
// rollback).
type UploadService struct {
	store media.BlobStore
	repo  domain.MarketRepository
	now   func() time.Time
}

func NewUploadService(store media.BlobStore, repo domain.MarketRepository) *UploadService {
	return &UploadService{store: store, repo: repo, now: time.Now}
}

// Handle validates inputs, then persists each file and collects public
// URLs. No storage call happens before category and parent validation pass.
func (s *UploadService) Handle(ctx context.Context, vendorID int64, category, parentID string, files []UploadFile) ([]string, error) {
	if strings.TrimSpace(parentID) == "" || strings.TrimSpace(category) == "" {
		return nil, domain.ErrMissingField
	}
	cat, err := media.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.ErrMissingField
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		path, err := media.ResolvePath(cat, parentID, f.Name, s.now())
		if err != nil {
			return nil, err
		}

		start := time.Now()
		url, err := s.store.Put(ctx, path, f.ContentType, f.Content)
		observability.ObserveStorage(s.store.Name(), "put", err, time.Since(start))
		if err != nil {
			return nil, &domain.StorageWriteError{FileName: f.Name, Err: err}
		}
		urls = append(urls, url)

		if s.repo != nil && vendorID > 0 {
			rec := domain.UploadRecord{
				VendorID:    vendorID,
				Category:    string(cat),
				ParentID:    parentID,
				Path:        path,
				PublicURL:   url,
				ContentType: f.ContentType,
				SizeBytes:   f.Size,
			}
			if err := s.repo.LogUpload(ctx, rec); err != nil {
				// audit trail is best-effort; the upload itself succeeded
				log.Warn().Err(err).Str("path", path).Msg("upload audit log failed")
			}
		}
	}
	return urls, nil
}
