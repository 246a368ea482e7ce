package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsRequest(handler http.Handler, method, origin string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(method, "/api/news", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	handler.ServeHTTP(rec, r)
	return rec
}

func TestCORS(t *testing.T) {
	wildcard := CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
	restricted := wildcard
	restricted.AllowedOrigins = []string{"https://app.example.com"}

	tests := []struct {
		name      string
		config    CORSConfig
		method    string
		origin    string
		wantCode  int
		wantAllow string
		wantVary  bool
	}{
		{
			name:      "wildcard allows any origin",
			config:    wildcard,
			method:    http.MethodGet,
			origin:    "https://anywhere.example",
			wantCode:  http.StatusOK,
			wantAllow: "*",
		},
		{
			name:     "no origin header passes through untouched",
			config:   wildcard,
			method:   http.MethodGet,
			wantCode: http.StatusOK,
		},
		{
			name:      "allowed origin echoed with Vary",
			config:    restricted,
			method:    http.MethodGet,
			origin:    "https://app.example.com",
			wantCode:  http.StatusOK,
			wantAllow: "https://app.example.com",
			wantVary:  true,
		},
		{
			name:     "disallowed origin gets no CORS headers",
			config:   restricted,
			method:   http.MethodGet,
			origin:   "https://evil.example",
			wantCode: http.StatusOK,
		},
		{
			name:      "preflight answered with 204",
			config:    wildcard,
			method:    http.MethodOptions,
			origin:    "https://anywhere.example",
			wantCode:  http.StatusNoContent,
			wantAllow: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORS(tt.config)(okHandler())
			rec := corsRequest(handler, tt.method, tt.origin)

			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
			if gotVary := rec.Header().Get("Vary") == "Origin"; gotVary != tt.wantVary {
				t.Errorf("Vary: Origin present = %v, want %v", gotVary, tt.wantVary)
			}
		})
	}
}

func TestCORS_PreflightHeaders(t *testing.T) {
	config := LoadCORSConfig()
	handler := CORS(config)(okHandler())

	rec := corsRequest(handler, http.MethodOptions, "https://app.example.com")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, X-Request-ID" {
		t.Errorf("Allow-Headers = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Errorf("Max-Age = %q", got)
	}
}

func TestLoadCORSConfig_FromEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CORS_MAX_AGE", "600")

	config := LoadCORSConfig()
	if len(config.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want 2 entries", config.AllowedOrigins)
	}
	if config.MaxAge != 600 {
		t.Errorf("MaxAge = %d, want 600", config.MaxAge)
	}
}
