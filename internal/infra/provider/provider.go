// Package provider implements the upstream news API clients. Each provider
// (GNews, NewsAPI, Bing News, NYT) gets its own Fetcher that builds the
// provider-specific request, issues one bounded GET, and normalizes the
// provider's raw article shape into entity.Article.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"globenews/internal/domain/entity"
	"globenews/internal/resilience/circuitbreaker"
)

// Query holds the request parameters passed through to the providers.
type Query struct {
	// Country is a validated two-letter country code.
	Country string

	// Category is a validated category name, or empty for all.
	Category string

	// Search is free text forwarded to providers that support it.
	Search string
}

// CategoryOrDefault returns the requested category, falling back to
// "general" for providers that require one.
func (q Query) CategoryOrDefault() string {
	if q.Category == "" {
		return "general"
	}
	return q.Category
}

// Fetcher fetches and normalizes top headlines from one provider.
//
// Implementations return an error for transport, timeout and decode
// failures; the aggregator logs the error and drops the provider from the
// merge. A reachable provider with no matching articles returns an empty
// slice and a nil error.
type Fetcher interface {
	// Name returns the provider label used in logs and metrics.
	Name() string

	// Fetch returns the provider's normalized articles for the query.
	Fetch(ctx context.Context, q Query) ([]entity.Article, error)
}

// maxResponseBytes caps upstream response bodies. The largest legitimate
// top-headlines payload observed is well under 1 MiB.
const maxResponseBytes = 4 << 20

// client is the shared HTTP plumbing for all four providers: one bounded
// GET through an outbound token-bucket limiter and a circuit breaker.
type client struct {
	http    *http.Client
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
}

func newClient(httpClient *http.Client, limiter *rate.Limiter, breaker *circuitbreaker.CircuitBreaker) client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return client{http: httpClient, limiter: limiter, breaker: breaker}
}

// getJSON issues a GET for url and decodes the JSON response into v. The
// caller's context carries the per-call deadline; the limiter wait and the
// request itself both respect it. Non-2xx statuses are errors: the caller
// treats them like any other provider failure.
func (c client) getJSON(ctx context.Context, url string, header http.Header, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("outbound rate limit: %w", err)
		}
	}

	do := func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		for key, values := range header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}

		if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(v); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return nil, nil
	}

	var err error
	if c.breaker != nil {
		_, err = c.breaker.Execute(do)
	} else {
		_, err = do()
	}
	return err
}

// IsUnavailable reports whether err means the provider was skipped because
// its circuit breaker is open, as opposed to an actual failed call.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
