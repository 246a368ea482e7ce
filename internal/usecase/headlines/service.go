package headlines

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"globenews/internal/cache"
	"globenews/internal/domain/entity"
	"globenews/internal/infra/provider"
	"globenews/internal/observability/metrics"
)

// Service aggregates headlines from a fixed, ordered set of providers.
// Provider order matters: when two providers return the same story, the
// copy from the earlier provider wins during deduplication.
type Service struct {
	fetchers []provider.Fetcher
	cache    *cache.Store
	timeout  time.Duration
}

// NewService creates a headline aggregation service.
//
// Parameters:
//   - fetchers: Upstream providers in priority order
//   - store: TTL cache for aggregated results (can be nil to disable caching)
//   - timeout: Per-provider fetch deadline
func NewService(fetchers []provider.Fetcher, store *cache.Store, timeout time.Duration) *Service {
	return &Service{
		fetchers: fetchers,
		cache:    store,
		timeout:  timeout,
	}
}

// cacheKey identifies one query's aggregated result set. An empty
// category is keyed as "all" so that "no category" and an explicit
// category never collide.
func cacheKey(q provider.Query) string {
	category := q.Category
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s-%s-%s", q.Country, category, q.Search)
}

// TopHeadlines returns the merged, deduplicated, recency-sorted headlines
// for q. Results come from the cache when a fresh entry exists; otherwise
// all providers are queried in parallel and the combined result is cached
// when non-empty. Returns ErrNoArticles when nothing was found.
func (s *Service) TopHeadlines(ctx context.Context, q provider.Query) ([]entity.Article, error) {
	key := cacheKey(q)
	if s.cache != nil {
		if entry, ok := s.cache.Get(key); ok {
			metrics.RecordCacheHit()
			slog.Debug("cache hit", "key", key, "articles", len(entry.Articles))
			return entry.Articles, nil
		}
		metrics.RecordCacheMiss()
	}

	results := s.fetchAll(ctx, q)

	articles := dedupe(results)
	sortByRecency(articles)

	if len(articles) == 0 {
		return nil, ErrNoArticles
	}

	if s.cache != nil {
		s.cache.Set(key, cache.Entry{Articles: articles})
		metrics.UpdateCacheEntries(s.cache.Len())
	}
	return articles, nil
}

// fetchAll queries every provider concurrently and returns their results
// indexed by provider position. A provider that fails or times out yields
// a nil slot; its error is logged and recorded but never propagated, so
// one bad upstream cannot take down the whole response.
func (s *Service) fetchAll(ctx context.Context, q provider.Query) [][]entity.Article {
	results := make([][]entity.Article, len(s.fetchers))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range s.fetchers {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			start := time.Now()
			articles, err := f.Fetch(fetchCtx, q)
			metrics.RecordProviderFetch(f.Name(), time.Since(start), len(articles), err)
			if err != nil {
				level := slog.LevelWarn
				if provider.IsUnavailable(err) {
					level = slog.LevelDebug
				}
				slog.Log(ctx, level, "provider fetch failed",
					"provider", f.Name(),
					"country", q.Country,
					"error", err,
				)
				return nil
			}
			results[i] = articles
			return nil
		})
	}
	// Workers swallow their own errors, Wait only observes ctx cancellation.
	_ = g.Wait()
	return results
}

// dedupe flattens per-provider results in priority order, dropping any
// article whose title or URL was already seen. Matching either field
// counts as a duplicate, which catches syndicated stories republished
// under a different URL.
func dedupe(results [][]entity.Article) []entity.Article {
	total := 0
	for _, r := range results {
		total += len(r)
	}

	seenTitle := make(map[string]struct{}, total)
	seenURL := make(map[string]struct{}, total)
	merged := make([]entity.Article, 0, total)

	for _, r := range results {
		for _, a := range r {
			_, dupTitle := seenTitle[a.Title]
			_, dupURL := seenURL[a.URL]
			if dupTitle || dupURL {
				continue
			}
			seenTitle[a.Title] = struct{}{}
			seenURL[a.URL] = struct{}{}
			merged = append(merged, a)
		}
	}
	return merged
}

// sortByRecency orders articles newest first. Articles whose publishedAt
// cannot be parsed get the zero time and sink to the end; the stable sort
// keeps provider priority order among them. Timestamps are parsed once
// up front rather than inside the comparison.
func sortByRecency(articles []entity.Article) {
	type keyed struct {
		article entity.Article
		t       time.Time
	}
	items := make([]keyed, len(articles))
	for i, a := range articles {
		items[i] = keyed{article: a, t: a.PublishedTime()}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].t.After(items[j].t)
	})
	for i, it := range items {
		articles[i] = it.article
	}
}
