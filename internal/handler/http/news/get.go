// Package news provides the HTTP handler for the aggregated headlines
// endpoint.
package news

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"globenews/internal/domain/entity"
	"globenews/internal/handler/http/respond"
	"globenews/internal/infra/provider"
	"globenews/internal/observability/logging"
	"globenews/internal/usecase/headlines"
)

// noArticlesMsg is returned with a 404 when every provider came back empty.
const noArticlesMsg = "No articles found. Please try a different country, category, or search term."

// GetHandler serves GET /api/news. It validates the country and category
// parameters, delegates aggregation to the headlines service, and maps
// the outcome onto HTTP status codes.
type GetHandler struct {
	Svc    *headlines.Service
	Logger *slog.Logger

	// ExposeErrorDetails includes the underlying error message in 500
	// responses. Enabled outside production only.
	ExposeErrorDetails bool
}

// ServeHTTP handles a headline request.
//
// Query parameters:
//   - country: ISO country code, default "us"
//   - category: news category, optional
//   - q: free-text search, optional
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	params := r.URL.Query()
	country := strings.ToLower(params.Get("country"))
	if country == "" {
		country = "us"
	}
	category := strings.ToLower(params.Get("category"))
	search := params.Get("q")

	if !entity.IsValidCountry(country) {
		logger.Warn("rejected headline request",
			slog.String("reason", "invalid country"),
			slog.String("country", country))
		respond.Error(w, http.StatusBadRequest, entity.ErrInvalidCountry.Error())
		return
	}
	if !entity.IsValidCategory(category) {
		logger.Warn("rejected headline request",
			slog.String("reason", "invalid category"),
			slog.String("category", category))
		respond.Error(w, http.StatusBadRequest, entity.ErrInvalidCategory.Error())
		return
	}

	logger.Info("headline request",
		slog.String("country", country),
		slog.String("category", category),
		slog.String("search", search))

	articles, err := h.Svc.TopHeadlines(ctx, provider.Query{
		Country:  country,
		Category: category,
		Search:   search,
	})
	if err != nil {
		if errors.Is(err, headlines.ErrNoArticles) {
			respond.JSON(w, http.StatusNotFound, map[string]any{
				"articles": []entity.Article{},
				"error":    noArticlesMsg,
			})
			return
		}
		respond.ServerError(w, err, h.ExposeErrorDetails)
		return
	}

	respond.JSON(w, http.StatusOK, map[string][]entity.Article{"articles": articles})
}
