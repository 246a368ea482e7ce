package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// SlidingWindow implements a sliding-window rate limiting algorithm that
// counts individual request timestamps within a moving time window. Unlike
// a fixed window it has no boundary burst: the 101st request within any
// window-length span is rejected regardless of wall-clock alignment.
//
// The algorithm carries clock-skew protection: if the clock moves
// backwards (NTP correction, manual change), the last timestamp seen for a
// key is used instead, so a time jump cannot reset a client's budget.
type SlidingWindow struct {
	clock Clock

	mu sync.Mutex
	// lastSeen tracks the newest timestamp handed out per key, for
	// clock-skew protection.
	lastSeen map[string]time.Time
}

// NewSlidingWindow creates a sliding-window algorithm backed by the given
// clock. A nil clock defaults to the system clock.
func NewSlidingWindow(clock Clock) *SlidingWindow {
	if clock == nil {
		clock = &SystemClock{}
	}
	return &SlidingWindow{
		clock:    clock,
		lastSeen: make(map[string]time.Time),
	}
}

// IsAllowed checks whether a request for key is within limit requests per
// window. When the store supports atomic check-and-add the check and the
// record happen under one lock; otherwise it falls back to a two-step
// sequence that can admit a small overshoot under heavy concurrency.
func (a *SlidingWindow) IsAllowed(
	ctx context.Context,
	key string,
	store Store,
	limit int,
	window time.Duration,
) (*Decision, error) {
	now := a.validTimestamp(key)
	cutoff := now.Add(-window)
	resetAt := now.Add(window)

	if atomicStore, ok := store.(AtomicStore); ok {
		allowed, count, err := atomicStore.CheckAndAddRequest(ctx, key, now, cutoff, limit)
		if err != nil {
			return nil, fmt.Errorf("check and add request: %w", err)
		}
		if allowed {
			return newAllowedDecision(key, limit, limit-count, resetAt), nil
		}
		return newDeniedDecision(key, limit, resetAt, resetAt.Sub(now)), nil
	}

	count, err := store.GetRequestCount(ctx, key, cutoff)
	if err != nil {
		return nil, fmt.Errorf("get request count: %w", err)
	}
	if count >= limit {
		return newDeniedDecision(key, limit, resetAt, resetAt.Sub(now)), nil
	}
	if err := store.AddRequest(ctx, key, now); err != nil {
		return nil, fmt.Errorf("add request: %w", err)
	}
	return newAllowedDecision(key, limit, limit-count-1, resetAt), nil
}

// validTimestamp returns the current time, or the last timestamp seen for
// key if the clock has moved backwards since then.
func (a *SlidingWindow) validTimestamp(key string) time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	if last, ok := a.lastSeen[key]; ok && now.Before(last) {
		slog.Warn("clock skew detected, using last valid timestamp",
			slog.String("key", key),
			slog.Time("now", now),
			slog.Time("last_seen", last),
			slog.Duration("skew", last.Sub(now)))
		return last
	}
	a.lastSeen[key] = now
	return now
}

// CleanupStale drops skew-tracking entries older than maxAge and returns
// how many were removed. Call periodically to keep the map bounded.
func (a *SlidingWindow) CleanupStale(maxAge time.Duration) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	cutoff := a.clock.Now().Add(-maxAge)
	removed := 0
	for key, ts := range a.lastSeen {
		if ts.Before(cutoff) {
			delete(a.lastSeen, key)
			removed++
		}
	}
	return removed
}
