package http

import (
	"context"
	"log/slog"
	"time"

	"globenews/pkg/ratelimit"
)

// StartRateLimitCleanup runs a loop that periodically removes expired
// entries from the rate limit store and stale per-key clock state from the
// sliding window algorithm. It blocks until ctx is cancelled, so callers
// run it in a goroutine.
//
// The cutoff is 2x the window so that entries still relevant under clock
// skew or in-flight checks are never removed early.
func StartRateLimitCleanup(
	ctx context.Context,
	store ratelimit.Store,
	algorithm *ratelimit.SlidingWindow,
	interval time.Duration,
	window time.Duration,
	limiterType string,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started",
		slog.String("limiter_type", limiterType),
		slog.Duration("interval", interval),
		slog.Duration("window", window))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped",
				slog.String("limiter_type", limiterType))
			return

		case <-ticker.C:
			cutoff := time.Now().Add(-2 * window)

			keysBefore, err := store.KeyCount(ctx)
			if err != nil {
				slog.Error("failed to get key count before cleanup",
					slog.String("limiter_type", limiterType),
					slog.Any("error", err))
				continue
			}

			if err := store.Cleanup(ctx, cutoff); err != nil {
				slog.Error("rate limit cleanup failed",
					slog.String("limiter_type", limiterType),
					slog.Any("error", err))
				continue
			}

			keysAfter, err := store.KeyCount(ctx)
			if err != nil {
				slog.Error("failed to get key count after cleanup",
					slog.String("limiter_type", limiterType),
					slog.Any("error", err))
				continue
			}

			staleClocks := 0
			if algorithm != nil {
				staleClocks = algorithm.CleanupStale(2 * window)
			}

			slog.Debug("rate limit cleanup completed",
				slog.String("limiter_type", limiterType),
				slog.Int("keys_before", keysBefore),
				slog.Int("keys_after", keysAfter),
				slog.Int("keys_removed", keysBefore-keysAfter),
				slog.Int("stale_clock_entries_removed", staleClocks),
				slog.Time("cutoff", cutoff))
		}
	}
}
