// mediasweep reports orphaned files in the temp upload staging areas.
// Uploads made with a temp parent token land under a shared "temp" segment
// and are supposed to be reconciled right after the owning resource is
// created; nothing garbage-collects the ones that never are. This tool only
// reports them — deleting is an operator decision.
package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"andaman_market/internal/adapters/observability"
	"andaman_market/internal/shared"
)

func main() {
	var (
		olderThan = flag.Duration("older-than", 24*time.Hour, "report files older than this")
		workers   = flag.Int64("workers", 8, "concurrent file stats")
	)
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.Storage.Bucket != "" {
		log.Fatal().Msg("mediasweep only supports the filesystem backend; inspect the bucket's temp prefixes directly")
	}

	// every category's temp staging area
	tempDirs := []string{
		filepath.Join(cfg.Storage.UploadDir, "images", "hotels", "temp"),
		filepath.Join(cfg.Storage.UploadDir, "images", "hotels", "temp", "rooms"),
		filepath.Join(cfg.Storage.UploadDir, "images", "services", "temp"),
		filepath.Join(cfg.Storage.UploadDir, "images", "package_categories", "temp"),
	}

	ctx := context.Background()
	sem := semaphore.NewWeighted(*workers)
	var wg sync.WaitGroup

	cutoff := time.Now().Add(-*olderThan)
	var mu sync.Mutex
	var orphaned int
	var totalBytes int64

	for _, dir := range tempDirs {
		ents, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn().Err(err).Str("dir", dir).Msg("read staging dir failed")
			}
			continue
		}
		for _, e := range ents {
			if e.IsDir() {
				continue
			}
			path := filepath.Join(dir, e.Name())

			if err := sem.Acquire(ctx, 1); err != nil {
				log.Fatal().Err(err).Msg("semaphore acquire failed")
			}
			wg.Add(1)
			go func(path string) {
				defer wg.Done()
				defer sem.Release(1)

				st, err := os.Stat(path)
				if err != nil {
					log.Warn().Err(err).Str("file", path).Msg("stat failed")
					return
				}
				if st.ModTime().After(cutoff) {
					return
				}
				log.Info().
					Str("file", path).
					Int64("bytes", st.Size()).
					Time("modified", st.ModTime()).
					Msg("orphaned temp upload")
				mu.Lock()
				orphaned++
				totalBytes += st.Size()
				mu.Unlock()
			}(path)
		}
	}

	wg.Wait()
	log.Info().
		Int("orphaned", orphaned).
		Int64("total_bytes", totalBytes).
		Dur("older_than", *olderThan).
		Msg("sweep completed")
}
