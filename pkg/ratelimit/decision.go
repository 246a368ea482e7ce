package ratelimit

import "time"

// Decision is the outcome of a rate limit check, carrying the metadata
// needed for X-RateLimit-* response headers.
type Decision struct {
	// Key is the identifier the check was performed for (e.g. an IP).
	Key string

	// Allowed reports whether the request is within the limit.
	Allowed bool

	// Limit is the maximum number of requests permitted per window.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window expires.
	ResetAt time.Time

	// RetryAfter is how long a rejected client should wait before retrying.
	RetryAfter time.Duration
}

// IsDenied reports whether the request was rejected.
func (d *Decision) IsDenied() bool {
	return !d.Allowed
}

// ResetAtUnix returns the window reset time as a Unix timestamp, for the
// X-RateLimit-Reset header.
func (d *Decision) ResetAtUnix() int64 {
	return d.ResetAt.Unix()
}

// RetryAfterSeconds returns the retry delay in whole seconds, clamped at
// zero, for the Retry-After header.
func (d *Decision) RetryAfterSeconds() int64 {
	seconds := int64(d.RetryAfter.Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

func newAllowedDecision(key string, limit, remaining int, resetAt time.Time) *Decision {
	return &Decision{
		Key:       key,
		Allowed:   true,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

func newDeniedDecision(key string, limit int, resetAt time.Time, retryAfter time.Duration) *Decision {
	if retryAfter < 0 {
		retryAfter = 0
	}
	return &Decision{
		Key:        key,
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: retryAfter,
	}
}
