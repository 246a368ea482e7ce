package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"globenews/internal/domain/entity"
	"globenews/internal/resilience/circuitbreaker"
)

// GNewsClient fetches top headlines from the GNews v4 API. Authentication
// is a token query parameter.
type GNewsClient struct {
	client
	baseURL string
	apiKey  string
}

// NewGNewsClient creates a GNews client. baseURL has no trailing slash,
// e.g. "https://gnews.io/api/v4".
func NewGNewsClient(baseURL, apiKey string, httpClient *http.Client, limiter *rate.Limiter, breaker *circuitbreaker.CircuitBreaker) *GNewsClient {
	return &GNewsClient{
		client:  newClient(httpClient, limiter, breaker),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Name returns the provider label.
func (c *GNewsClient) Name() string { return "gnews" }

// gnewsResponse is the raw shape of a GNews top-headlines response.
type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		Image       string `json:"image"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Fetch returns GNews top headlines normalized into entity.Article.
func (c *GNewsClient) Fetch(ctx context.Context, q Query) ([]entity.Article, error) {
	params := url.Values{}
	params.Set("token", c.apiKey)
	params.Set("lang", "en")
	params.Set("country", q.Country)
	params.Set("category", q.CategoryOrDefault())
	if q.Search != "" {
		params.Set("q", q.Search)
	}

	var raw gnewsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/top-headlines?%s", c.baseURL, params.Encode()), nil, &raw); err != nil {
		return nil, err
	}

	category := q.CategoryOrDefault()
	articles := make([]entity.Article, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		source := a.Source.Name
		if source == "" {
			source = "GNews"
		}
		articles = append(articles, entity.Article{
			Title:       a.Title,
			URL:         a.URL,
			Source:      source,
			PublishedAt: a.PublishedAt,
			Description: a.Description,
			Image:       a.Image,
			Category:    category,
		})
	}
	return articles, nil
}
