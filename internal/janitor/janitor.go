// Package janitor prunes physically expired cache entries on a fixed
// interval. Lazy expiry already keeps reads correct; this bounds memory in
// a long-lived process.
package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/skydeck-app/skydeck/internal/cache"
)

// Janitor sweeps a cache on an interval.
type Janitor struct {
	cache    *cache.Cache
	interval time.Duration
	stop     chan struct{}
}

func New(c *cache.Cache, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Janitor{
		cache:    c,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the periodic sweeps. Blocks until Stop is called or the
// context is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	slog.Info("cache janitor started", "interval", j.interval)

	for {
		select {
		case <-ticker.C:
			if removed := j.cache.Prune(); removed > 0 {
				slog.Info("cache janitor sweep", "removed", removed, "remaining", j.cache.Size())
			}
		case <-j.stop:
			slog.Info("cache janitor stopped")
			return
		case <-ctx.Done():
			slog.Info("cache janitor context cancelled")
			return
		}
	}
}

// Stop signals the janitor to stop.
func (j *Janitor) Stop() {
	close(j.stop)
}
