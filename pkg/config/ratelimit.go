package config

import (
	"log/slog"
	"time"

	"globenews/pkg/ratelimit"
)

// LoadRateLimitConfig loads rate limiting configuration from environment
// variables. Invalid values are logged and replaced by safe defaults; this
// function never fails.
//
// Environment variables:
//   - RATELIMIT_ENABLED: enable/disable rate limiting (default: true)
//   - RATELIMIT_LIMIT: requests allowed per client per window (default: 100)
//   - RATELIMIT_WINDOW: sliding window duration (default: 15m)
//   - RATELIMIT_MAX_KEYS: maximum tracked client keys in memory (default: 10000)
//   - RATELIMIT_CLEANUP_INTERVAL: store cleanup interval (default: 5m)
func LoadRateLimitConfig() *ratelimit.Config {
	cfg := &ratelimit.Config{}

	cfg.Enabled = GetEnvBool("RATELIMIT_ENABLED", true)

	limit := GetEnvInt("RATELIMIT_LIMIT", 100)
	if limit <= 0 {
		slog.Warn("invalid RATELIMIT_LIMIT, using default",
			slog.Int("value", limit),
			slog.Int("default", 100))
		limit = 100
	}
	cfg.Limit = limit

	window := GetEnvDuration("RATELIMIT_WINDOW", 15*time.Minute)
	if err := ValidatePositiveDuration(window); err != nil {
		slog.Warn("invalid RATELIMIT_WINDOW, using default",
			slog.String("value", window.String()),
			slog.String("default", "15m"))
		window = 15 * time.Minute
	}
	cfg.Window = window

	maxKeys := GetEnvInt("RATELIMIT_MAX_KEYS", 10000)
	if maxKeys <= 0 {
		slog.Warn("invalid RATELIMIT_MAX_KEYS, using default",
			slog.Int("value", maxKeys),
			slog.Int("default", 10000))
		maxKeys = 10000
	}
	cfg.MaxActiveKeys = maxKeys

	cleanupInterval := GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", 5*time.Minute)
	if err := ValidatePositiveDuration(cleanupInterval); err != nil {
		slog.Warn("invalid RATELIMIT_CLEANUP_INTERVAL, using default",
			slog.String("value", cleanupInterval.String()),
			slog.String("default", "5m"))
		cleanupInterval = 5 * time.Minute
	}
	cfg.CleanupInterval = cleanupInterval

	return cfg
}
