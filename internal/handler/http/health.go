// Package http provides HTTP handlers and middleware for the news API.
// It includes the aggregated headlines endpoint, health check endpoints,
// metrics collection, and various middleware components.
package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"globenews/internal/cache"
	"globenews/internal/resilience/circuitbreaker"
	"globenews/pkg/ratelimit"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports operational state: headline cache size, rate
// limiter key count, and the circuit breaker state of each upstream
// provider. The service has no hard dependencies, so it is healthy as
// long as it can respond; provider breaker states are informational.
type HealthHandler struct {
	Version string

	Cache              *cache.Store
	RateLimitStore     ratelimit.Store
	RateLimiterEnabled bool
	Breakers           []*circuitbreaker.CircuitBreaker
}

// ServeHTTP returns the application health status. Open provider breakers
// surface as a "degraded" providers check but never make the service
// unhealthy: the aggregator serves whatever providers remain.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)

	if h.Cache != nil {
		checks["cache"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"entries": h.Cache.Len()},
		}
	}

	if h.RateLimiterEnabled && h.RateLimitStore != nil {
		check := CheckStatus{Status: "healthy"}
		if keys, err := h.RateLimitStore.KeyCount(ctx); err == nil {
			check.Details = map[string]any{"active_keys": keys}
		} else {
			check.Message = err.Error()
		}
		checks["rate_limiter"] = check
	}

	if len(h.Breakers) > 0 {
		states := make(map[string]any, len(h.Breakers))
		open := 0
		for _, b := range h.Breakers {
			state := b.State().String()
			states[b.Name()] = state
			if state != "closed" {
				open++
			}
		}
		providerCheck := CheckStatus{Status: "healthy", Details: states}
		if open > 0 {
			providerCheck.Status = "degraded"
			providerCheck.Message = "one or more provider circuit breakers are not closed"
		}
		checks["providers"] = providerCheck
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("health: failed to encode response: %v", err)
	}
}

// ReadyHandler handles Kubernetes readiness probe requests. The service
// holds no connections that need warming, so ready tracks liveness.
type ReadyHandler struct{}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		log.Printf("ready: failed to write response: %v", err)
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		log.Printf("alive: failed to write response: %v", err)
	}
}
