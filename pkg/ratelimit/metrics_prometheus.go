package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements Metrics using Prometheus collectors held in
// a private registry, so tests and multiple limiter instances never clash
// on the global default registry.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	// requestsTotal counts checks by limiter type, outcome and path.
	requestsTotal *prometheus.CounterVec

	// checkDuration observes rate limit check latency. Checks are
	// in-memory map operations, so buckets top out at 100ms.
	checkDuration *prometheus.HistogramVec

	// activeKeys tracks how many client keys the store currently holds.
	activeKeys *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics with its own registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	m := &PrometheusMetrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ratelimit_requests_total",
				Help: "Total rate limit checks by outcome",
			},
			[]string{"limiter_type", "status", "path"},
		),
		checkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ratelimit_check_duration_seconds",
				Help:    "Duration of rate limit checks",
				Buckets: []float64{.0005, .001, .002, .005, .01, .025, .05, .1},
			},
			[]string{"limiter_type"},
		),
		activeKeys: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ratelimit_active_keys",
				Help: "Number of keys currently tracked by the rate limiter",
			},
			[]string{"limiter_type"},
		),
	}

	registry.MustRegister(m.requestsTotal, m.checkDuration, m.activeKeys)
	return m
}

// Registry returns the private registry, for exposing or inspecting the
// limiter's metrics.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAllowed records an admitted request.
func (m *PrometheusMetrics) RecordAllowed(limiterType, endpoint string) {
	m.requestsTotal.WithLabelValues(limiterType, "allowed", endpoint).Inc()
}

// RecordDenied records a rejected request.
func (m *PrometheusMetrics) RecordDenied(limiterType, endpoint string) {
	m.requestsTotal.WithLabelValues(limiterType, "denied", endpoint).Inc()
}

// RecordCheckDuration records how long a rate limit check took.
func (m *PrometheusMetrics) RecordCheckDuration(limiterType string, duration time.Duration) {
	m.checkDuration.WithLabelValues(limiterType).Observe(duration.Seconds())
}

// SetActiveKeys records the number of keys currently tracked.
func (m *PrometheusMetrics) SetActiveKeys(limiterType string, count int) {
	m.activeKeys.WithLabelValues(limiterType).Set(float64(count))
}
