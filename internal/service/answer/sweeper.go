package answer

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultSweepInterval = time.Hour
	DefaultTempDirTTL    = time.Hour
)

// StartTempSweeper launches a background loop that removes request-scoped
// directories left behind by crashed requests. Normal requests clean up
// after themselves; the sweeper only covers leftovers.
func (s *Service) StartTempSweeper(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if ttl <= 0 {
		ttl = DefaultTempDirTTL
	}
	go s.sweepLoop(ctx, interval, ttl)
}

func (s *Service) sweepLoop(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.sweepStaleDirs(ttl); err != nil {
				log.Printf("sweep temp dirs error: %v", err)
			}
		}
	}
}

func (s *Service) sweepStaleDirs(ttl time.Duration) error {
	entries, err := os.ReadDir(s.workDir)
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-ttl)
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		stale := filepath.Join(s.workDir, entry.Name())
		if err := os.RemoveAll(stale); err != nil {
			log.Printf("remove stale dir %s failed: %v", stale, err)
		}
	}
	return nil
}
