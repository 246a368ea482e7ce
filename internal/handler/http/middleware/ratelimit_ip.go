package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"globenews/pkg/ratelimit"
)

// IPRateLimiter is HTTP middleware that enforces a per-IP request budget
// using the core pkg/ratelimit package. It extracts the client IP via an
// IPExtractor, asks the configured Algorithm for a decision, sets the
// X-RateLimit-* headers, and rejects over-budget requests with 429.
//
// Any internal limiter failure fails open: availability of the news API
// beats strict enforcement.
type IPRateLimiter struct {
	config      *ratelimit.Config
	ipExtractor IPExtractor
	store       ratelimit.Store
	algorithm   ratelimit.Algorithm
	metrics     ratelimit.Metrics
}

// NewIPRateLimiter creates an IP-based rate limiter middleware.
func NewIPRateLimiter(
	config *ratelimit.Config,
	ipExtractor IPExtractor,
	store ratelimit.Store,
	algorithm ratelimit.Algorithm,
	metrics ratelimit.Metrics,
) *IPRateLimiter {
	return &IPRateLimiter{
		config:      config,
		ipExtractor: ipExtractor,
		store:       store,
		algorithm:   algorithm,
		metrics:     metrics,
	}
}

// Middleware returns the http.Handler wrapper enforcing the limit.
func (rl *IPRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			ip, err := rl.ipExtractor.ExtractIP(r)
			if err != nil {
				slog.Error("rate limiter: failed to extract IP, allowing request",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("path", r.URL.Path),
				)
				next.ServeHTTP(w, r)
				return
			}

			decision, err := rl.algorithm.IsAllowed(r.Context(), ip, rl.store, rl.config.Limit, rl.config.Window)
			if rl.metrics != nil {
				rl.metrics.RecordCheckDuration("ip", time.Since(start))
			}
			if err != nil {
				slog.Error("rate limiter: check failed, allowing request",
					slog.String("error", err.Error()),
					slog.String("ip", ip),
					slog.String("path", r.URL.Path),
				)
				next.ServeHTTP(w, r)
				return
			}

			setRateLimitHeaders(w, decision)

			if decision.IsDenied() {
				rl.writeRateLimitError(w, r, decision)
				return
			}

			if rl.metrics != nil {
				rl.metrics.RecordAllowed("ip", r.URL.Path)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// setRateLimitHeaders exposes the limiter state to clients.
func setRateLimitHeaders(w http.ResponseWriter, decision *ratelimit.Decision) {
	if decision == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAtUnix(), 10))
	w.Header().Set("X-RateLimit-Type", "ip")
}

// writeRateLimitError writes the 429 response with a Retry-After header.
func (rl *IPRateLimiter) writeRateLimitError(w http.ResponseWriter, r *http.Request, decision *ratelimit.Decision) {
	retryAfter := decision.RetryAfterSeconds()
	w.Header().Set("Retry-After", strconv.FormatInt(retryAfter, 10))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	body := `{"error":"rate_limit_exceeded","message":"Too many requests from this IP address","retry_after":` +
		strconv.FormatInt(retryAfter, 10) + `}` + "\n"
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Error("rate limiter: failed to write 429 response",
			slog.String("error", err.Error()),
		)
	}

	if rl.metrics != nil {
		rl.metrics.RecordDenied("ip", r.URL.Path)
	}
	slog.Warn("rate limit exceeded",
		slog.String("limiter_type", "ip"),
		slog.String("key", decision.Key),
		slog.Int("limit", decision.Limit),
		slog.Int64("retry_after", retryAfter),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
	)
}
