package http

import (
	"net/http"
)

// InputValidation returns middleware that rejects oversized request inputs.
// It enforces limits on:
//   - URI path length (2KB)
//   - Query string length (4KB)
//
// The API is read-only with short query parameters, so anything beyond
// these limits is abuse rather than a legitimate request.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > 2048 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestURITooLong)
				_, _ = w.Write([]byte(`{"error":"URI too long"}`))
				return
			}

			if len(r.URL.RawQuery) > 4096 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestURITooLong)
				_, _ = w.Write([]byte(`{"error":"query string too long"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
