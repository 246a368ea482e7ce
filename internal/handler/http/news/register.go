package news

import (
	"log/slog"
	"net/http"

	"globenews/internal/usecase/headlines"
)

// Register registers the news routes with the given mux.
func Register(mux *http.ServeMux, svc *headlines.Service, logger *slog.Logger, exposeErrorDetails bool) {
	mux.Handle("GET /api/news", GetHandler{
		Svc:                svc,
		Logger:             logger,
		ExposeErrorDetails: exposeErrorDetails,
	})
}
