// Package headlines provides the use case for aggregating top headlines
// across multiple upstream news providers. It implements the fan-out to
// providers, result merging with deduplication, recency sorting, and the
// TTL result cache.
package headlines

import "errors"

// Sentinel errors for headline aggregation.
var (
	// ErrNoArticles indicates that no provider returned any article for
	// the requested query. Providers that failed or timed out contribute
	// nothing, so this also covers the case where every provider failed.
	ErrNoArticles = errors.New("no articles found")
)
