package middleware

import (
	"net/http"
	"os"
	"strconv"
	"strings"
)

// CORSConfig holds the CORS policy for the news API. The API is a public
// read-only service, so the default policy allows every origin; deployments
// that front a known web client can narrow it via CORS_ALLOWED_ORIGINS.
type CORSConfig struct {
	// AllowedOrigins is the origin whitelist. The single entry "*" allows
	// any origin.
	AllowedOrigins []string

	// AllowedMethods are the methods advertised on preflight responses.
	AllowedMethods []string

	// AllowedHeaders are the request headers advertised on preflight
	// responses.
	AllowedHeaders []string

	// MaxAge is how long browsers may cache preflight results, in seconds.
	MaxAge int
}

// LoadCORSConfig builds the CORS policy from the environment.
//
// Environment variables:
//   - CORS_ALLOWED_ORIGINS: comma-separated origins, default "*"
//   - CORS_MAX_AGE: preflight cache seconds, default 86400
func LoadCORSConfig() CORSConfig {
	config := CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}

	if origins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); origins != "" {
		config.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				config.AllowedOrigins = append(config.AllowedOrigins, o)
			}
		}
	}
	if raw := os.Getenv("CORS_MAX_AGE"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			config.MaxAge = v
		}
	}
	return config
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or
// an empty string when the origin is not allowed.
func (c CORSConfig) allowOrigin(origin string) string {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if allowed == origin {
			return origin
		}
	}
	return ""
}

// CORS returns middleware applying the given policy. Preflight OPTIONS
// requests are answered with 204 and never reach the next handler.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// Same-origin request, nothing to do
				next.ServeHTTP(w, r)
				return
			}

			allow := config.allowOrigin(origin)
			if allow == "" {
				// Disallowed origins get no CORS headers; the browser
				// enforces the block
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", allow)
			if allow != "*" {
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
