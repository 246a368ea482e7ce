// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Upstream provider metrics (fetch counts, latency, article volume)
//   - Headline cache metrics (hits, misses, live entries)
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "globenews/internal/observability/metrics"
//
//	start := time.Now()
//	articles, err := fetcher.Fetch(ctx, query)
//	metrics.RecordProviderFetch(fetcher.Name(), time.Since(start), len(articles), err)
package metrics
