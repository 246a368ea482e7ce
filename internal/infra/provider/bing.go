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

// BingClient fetches headlines from the Bing News Search v7 API. Bing has
// no country/category parameters, so both are folded into the search text;
// authentication is the Ocp-Apim-Subscription-Key header.
type BingClient struct {
	client
	baseURL string
	apiKey  string
}

// NewBingClient creates a Bing News client. baseURL has no trailing slash,
// e.g. "https://api.bing.microsoft.com/v7.0".
func NewBingClient(baseURL, apiKey string, httpClient *http.Client, limiter *rate.Limiter, breaker *circuitbreaker.CircuitBreaker) *BingClient {
	return &BingClient{
		client:  newClient(httpClient, limiter, breaker),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Name returns the provider label.
func (c *BingClient) Name() string { return "bing" }

type bingResponse struct {
	Value []struct {
		Name          string `json:"name"`
		URL           string `json:"url"`
		Description   string `json:"description"`
		DatePublished string `json:"datePublished"`
		Provider      []struct {
			Name string `json:"name"`
		} `json:"provider"`
		Image struct {
			Thumbnail struct {
				ContentURL string `json:"contentUrl"`
			} `json:"thumbnail"`
		} `json:"image"`
	} `json:"value"`
}

// searchText builds Bing's free-text query: "{category} news {country}"
// when a category was requested, otherwise just the country code, with any
// user search text appended.
func (c *BingClient) searchText(q Query) string {
	text := q.Country
	if q.Category != "" {
		text = fmt.Sprintf("%s news %s", q.Category, q.Country)
	}
	if q.Search != "" {
		text += " " + q.Search
	}
	return text
}

// Fetch returns Bing news results normalized into entity.Article.
func (c *BingClient) Fetch(ctx context.Context, q Query) ([]entity.Article, error) {
	params := url.Values{}
	params.Set("q", c.searchText(q))
	params.Set("mkt", "en-US")

	header := http.Header{}
	header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	var raw bingResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/news/search?%s", c.baseURL, params.Encode()), header, &raw); err != nil {
		return nil, err
	}

	category := q.CategoryOrDefault()
	articles := make([]entity.Article, 0, len(raw.Value))
	for _, a := range raw.Value {
		source := "Bing News"
		if len(a.Provider) > 0 && a.Provider[0].Name != "" {
			source = a.Provider[0].Name
		}
		articles = append(articles, entity.Article{
			Title:       a.Name,
			URL:         a.URL,
			Source:      source,
			PublishedAt: a.DatePublished,
			Description: a.Description,
			Image:       a.Image.Thumbnail.ContentURL,
			Category:    category,
		})
	}
	return articles, nil
}
