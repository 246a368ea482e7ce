// Package ratelimit provides framework-agnostic sliding-window rate
// limiting with pluggable storage, clock and metrics backends. The HTTP
// layer wires it to client IP addresses; nothing in this package depends
// on net/http.
package ratelimit

import (
	"context"
	"time"
)

// Store persists request timestamps per rate-limit key. Implementations
// must be safe for concurrent use.
type Store interface {
	// AddRequest records a request timestamp for the given key.
	AddRequest(ctx context.Context, key string, timestamp time.Time) error

	// GetRequestCount returns the number of requests recorded for key
	// strictly after cutoff.
	GetRequestCount(ctx context.Context, key string, cutoff time.Time) (int, error)

	// Cleanup removes timestamps older than cutoff across all keys,
	// dropping keys that end up empty.
	Cleanup(ctx context.Context, cutoff time.Time) error

	// KeyCount returns the number of keys currently tracked.
	KeyCount(ctx context.Context) (int, error)
}

// AtomicStore extends Store with an atomic check-and-add operation that
// prevents TOCTOU races between concurrent requests for the same key.
type AtomicStore interface {
	Store

	// CheckAndAddRequest atomically counts requests after cutoff and, if
	// the count is below limit, records timestamp. It returns whether the
	// request was admitted and the in-window count after the operation.
	CheckAndAddRequest(ctx context.Context, key string, timestamp, cutoff time.Time, limit int) (allowed bool, count int, err error)
}

// Algorithm decides whether a request identified by key is admitted given
// the state held in a Store.
type Algorithm interface {
	IsAllowed(ctx context.Context, key string, store Store, limit int, window time.Duration) (*Decision, error)
}

// Metrics receives rate limiting observability events. Implementations can
// forward them to Prometheus or discard them.
type Metrics interface {
	// RecordAllowed records an admitted request.
	RecordAllowed(limiterType, endpoint string)

	// RecordDenied records a rejected request.
	RecordDenied(limiterType, endpoint string)

	// RecordCheckDuration records how long a rate limit check took.
	RecordCheckDuration(limiterType string, duration time.Duration)

	// SetActiveKeys records the number of keys currently tracked.
	SetActiveKeys(limiterType string, count int)
}

// Clock abstracts time.Now so window arithmetic can be tested with a
// controlled clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock implementation backed by the system time.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
