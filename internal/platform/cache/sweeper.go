package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
)

// Sweepable is implemented by every Store.
type Sweepable interface {
	Name() string
	SweepExpired() int
}

// StartSweeper periodically evicts expired entries from stores until ctx is
// done. A non-positive interval disables it.
func StartSweeper(ctx context.Context, interval time.Duration, logger *logging.Logger, stores ...Sweepable) {
	if interval <= 0 || len(stores) == 0 {
		return
	}
	if logger == nil {
		logger = logging.Default()
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, store := range stores {
					if removed := store.SweepExpired(); removed > 0 {
						logger.Debug("cache sweep", "cache", store.Name(), "removed", removed)
					}
				}
			}
		}
	}()
}
