// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking provider
// credentials that may appear in upstream error messages.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent, all we can do is log it
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and message.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]string{"error": msg})
}

// serverErrorMsg is the generic message returned on aggregation failures.
const serverErrorMsg = "An error occurred while fetching news. Please try again later."

// ServerError writes a 500 response with a generic message. The underlying
// error is logged with credentials masked. When exposeDetails is true (set
// outside production) the raw error message is included in the body to ease
// debugging.
func ServerError(w http.ResponseWriter, err error, exposeDetails bool) {
	slog.Default().Error("internal server error",
		slog.String("error", SanitizeError(err)))

	body := map[string]string{"error": serverErrorMsg}
	if exposeDetails && err != nil {
		body["details"] = err.Error()
	}
	JSON(w, http.StatusInternalServerError, body)
}
