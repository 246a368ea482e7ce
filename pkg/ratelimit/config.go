package ratelimit

import "time"

// Config holds the settings for one rate limiter instance.
type Config struct {
	// Enabled controls whether rate limiting is active at all.
	Enabled bool

	// Limit is the maximum number of requests per key per Window.
	Limit int

	// Window is the sliding window duration.
	Window time.Duration

	// MaxActiveKeys caps the number of keys the store tracks before LRU
	// eviction kicks in.
	MaxActiveKeys int

	// CleanupInterval is how often the background cleanup sweeps expired
	// timestamps from the store.
	CleanupInterval time.Duration
}
