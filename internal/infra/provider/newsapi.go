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

// NewsAPIClient fetches top headlines from the NewsAPI v2 API.
// Authentication is an apiKey query parameter. The raw article shape is
// nearly identical to GNews, except the thumbnail field is urlToImage.
type NewsAPIClient struct {
	client
	baseURL string
	apiKey  string
}

// NewNewsAPIClient creates a NewsAPI client. baseURL has no trailing
// slash, e.g. "https://newsapi.org/v2".
func NewNewsAPIClient(baseURL, apiKey string, httpClient *http.Client, limiter *rate.Limiter, breaker *circuitbreaker.CircuitBreaker) *NewsAPIClient {
	return &NewsAPIClient{
		client:  newClient(httpClient, limiter, breaker),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Name returns the provider label.
func (c *NewsAPIClient) Name() string { return "newsapi" }

type newsapiResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Fetch returns NewsAPI top headlines normalized into entity.Article.
func (c *NewsAPIClient) Fetch(ctx context.Context, q Query) ([]entity.Article, error) {
	params := url.Values{}
	params.Set("country", q.Country)
	params.Set("category", q.CategoryOrDefault())
	params.Set("apiKey", c.apiKey)
	if q.Search != "" {
		params.Set("q", q.Search)
	}

	var raw newsapiResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/top-headlines?%s", c.baseURL, params.Encode()), nil, &raw); err != nil {
		return nil, err
	}

	category := q.CategoryOrDefault()
	articles := make([]entity.Article, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		source := a.Source.Name
		if source == "" {
			source = "NewsAPI"
		}
		articles = append(articles, entity.Article{
			Title:       a.Title,
			URL:         a.URL,
			Source:      source,
			PublishedAt: a.PublishedAt,
			Description: a.Description,
			Image:       a.URLToImage,
			Category:    category,
		})
	}
	return articles, nil
}
