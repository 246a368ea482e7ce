package metrics

import "time"

// RecordProviderFetch records the outcome of one upstream provider call.
// A failed call still observes its duration so that timeouts show up in
// the latency histogram.
func RecordProviderFetch(provider string, duration time.Duration, articles int, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	ProviderFetchesTotal.WithLabelValues(provider, status).Inc()
	ProviderFetchDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if articles > 0 {
		ProviderArticlesTotal.WithLabelValues(provider).Add(float64(articles))
	}
}

// RecordCacheHit records a headline cache lookup that found a fresh entry.
func RecordCacheHit() {
	CacheRequestsTotal.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a headline cache lookup that missed or was stale.
func RecordCacheMiss() {
	CacheRequestsTotal.WithLabelValues("miss").Inc()
}

// UpdateCacheEntries updates the gauge of live cache entries. Called after
// writes and after each sweep.
func UpdateCacheEntries(count int) {
	CacheEntries.Set(float64(count))
}
