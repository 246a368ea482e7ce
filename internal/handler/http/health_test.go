package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"globenews/internal/cache"
	"globenews/internal/resilience/circuitbreaker"
	"globenews/pkg/ratelimit"
)

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var response HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("health body is not valid JSON: %v", err)
	}
	return response
}

func TestHealthHandler(t *testing.T) {
	store := cache.New(time.Minute, nil)
	store.Set("us-all-", cache.Entry{})

	handler := &HealthHandler{
		Version:            "test",
		Cache:              store,
		RateLimitStore:     ratelimit.NewMemoryStore(ratelimit.MemoryStoreConfig{MaxKeys: 10}),
		RateLimiterEnabled: true,
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
	response := decodeHealth(t, rec)
	if response.Status != "healthy" {
		t.Errorf("status = %q, want healthy", response.Status)
	}
	if response.Version != "test" {
		t.Errorf("version = %q, want test", response.Version)
	}

	cacheCheck, ok := response.Checks["cache"]
	if !ok {
		t.Fatal("cache check missing")
	}
	if entries, _ := cacheCheck.Details["entries"].(float64); entries != 1 {
		t.Errorf("cache entries = %v, want 1", cacheCheck.Details["entries"])
	}
	if _, ok := response.Checks["rate_limiter"]; !ok {
		t.Error("rate_limiter check missing")
	}
}

func TestHealthHandler_BreakerStates(t *testing.T) {
	breaker := circuitbreaker.New(circuitbreaker.NewsAPIConfig("gnews"))
	handler := &HealthHandler{Version: "test", Breakers: []*circuitbreaker.CircuitBreaker{breaker}}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	response := decodeHealth(t, rec)
	providers, ok := response.Checks["providers"]
	if !ok {
		t.Fatal("providers check missing")
	}
	if providers.Status != "healthy" {
		t.Errorf("providers status = %q, want healthy", providers.Status)
	}
	if state, _ := providers.Details["gnews"].(string); state != "closed" {
		t.Errorf("gnews breaker state = %v, want closed", providers.Details["gnews"])
	}
}

func TestHealthHandler_RateLimiterDisabled(t *testing.T) {
	handler := &HealthHandler{Version: "test"}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	response := decodeHealth(t, rec)
	if _, ok := response.Checks["rate_limiter"]; ok {
		t.Error("rate_limiter check should be omitted when the limiter is disabled")
	}
}

func TestProbeHandlers(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.Handler
		wantBody string
	}{
		{name: "ready", handler: &ReadyHandler{}, wantBody: "ready"},
		{name: "live", handler: &LiveHandler{}, wantBody: "alive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Code != http.StatusOK {
				t.Errorf("code = %d, want 200", rec.Code)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}
