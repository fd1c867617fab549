package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-console/internal/session"
)

// RunSessionJanitor purges expired sessions every interval until ctx is done. Stores that
// expire records on their own do not implement session.Purger and are skipped.
func RunSessionJanitor(ctx context.Context, store session.Store, interval time.Duration, logger *zap.Logger) {
	purger, ok := store.(session.Purger)
	if !ok || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := purger.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("session purge failed", zap.String("store", store.Name()), zap.Error(err))
				continue
			}
			if purged > 0 {
				logger.Info("purged expired sessions", zap.String("store", store.Name()), zap.Int64("count", purged))
			}
		}
	}
}
