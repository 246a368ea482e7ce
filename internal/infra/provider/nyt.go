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

// NYTClient fetches the New York Times Top Stories feed. The API is
// sectioned rather than searchable: the requested category maps onto a
// section path segment and country/search are ignored.
type NYTClient struct {
	client
	baseURL string
	apiKey  string
}

// NewNYTClient creates a Top Stories client. baseURL has no trailing
// slash, e.g. "https://api.nytimes.com/svc/topstories/v2".
func NewNYTClient(baseURL, apiKey string, httpClient *http.Client, limiter *rate.Limiter, breaker *circuitbreaker.CircuitBreaker) *NYTClient {
	return &NYTClient{
		client:  newClient(httpClient, limiter, breaker),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Name returns the provider label.
func (c *NYTClient) Name() string { return "nyt" }

type nytResponse struct {
	Results []struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		Section       string `json:"section"`
		Abstract      string `json:"abstract"`
		PublishedDate string `json:"published_date"`
		Multimedia    []struct {
			URL string `json:"url"`
		} `json:"multimedia"`
	} `json:"results"`
}

// Fetch returns Top Stories for the requested section, "home" when no
// category was given. Each article carries its own NYT section as the
// category when the feed provides one.
func (c *NYTClient) Fetch(ctx context.Context, q Query) ([]entity.Article, error) {
	section := q.Category
	if section == "" {
		section = "home"
	}

	params := url.Values{}
	params.Set("api-key", c.apiKey)

	var raw nytResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%s.json?%s", c.baseURL, section, params.Encode()), nil, &raw); err != nil {
		return nil, err
	}

	articles := make([]entity.Article, 0, len(raw.Results))
	for _, a := range raw.Results {
		source := a.Section
		if source == "" {
			source = "NYT"
		}
		category := a.Section
		if category == "" {
			category = q.CategoryOrDefault()
		}
		var image string
		if len(a.Multimedia) > 0 {
			image = a.Multimedia[0].URL
		}
		articles = append(articles, entity.Article{
			Title:       a.Title,
			URL:         a.URL,
			Source:      source,
			PublishedAt: a.PublishedDate,
			Description: a.Abstract,
			Image:       image,
			Category:    category,
		})
	}
	return articles, nil
}
