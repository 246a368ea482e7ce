package ratelimit

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

// counterValue gathers the registry and returns the counter value for the
// given metric and label set, or -1 if no matching series exists.
func counterValue(t *testing.T, m *PrometheusMetrics, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if !matchLabels(metric, labels) {
				continue
			}
			switch {
			case metric.Counter != nil:
				return metric.Counter.GetValue()
			case metric.Gauge != nil:
				return metric.Gauge.GetValue()
			}
		}
	}
	return -1
}

func matchLabels(metric *dto.Metric, labels map[string]string) bool {
	got := make(map[string]string, len(metric.Label))
	for _, pair := range metric.Label {
		got[pair.GetName()] = pair.GetValue()
	}
	for name, value := range labels {
		if got[name] != value {
			return false
		}
	}
	return true
}

func TestPrometheusMetrics_Counters(t *testing.T) {
	m := NewPrometheusMetrics()

	m.RecordAllowed("ip", "/api/news")
	m.RecordAllowed("ip", "/api/news")
	m.RecordDenied("ip", "/api/news")

	allowed := counterValue(t, m, "ratelimit_requests_total",
		map[string]string{"limiter_type": "ip", "status": "allowed", "path": "/api/news"})
	if allowed != 2 {
		t.Errorf("allowed = %v, want 2", allowed)
	}

	denied := counterValue(t, m, "ratelimit_requests_total",
		map[string]string{"limiter_type": "ip", "status": "denied", "path": "/api/news"})
	if denied != 1 {
		t.Errorf("denied = %v, want 1", denied)
	}
}

func TestPrometheusMetrics_ActiveKeys(t *testing.T) {
	m := NewPrometheusMetrics()

	m.SetActiveKeys("ip", 42)
	got := counterValue(t, m, "ratelimit_active_keys", map[string]string{"limiter_type": "ip"})
	if got != 42 {
		t.Errorf("active keys = %v, want 42", got)
	}

	m.SetActiveKeys("ip", 7)
	got = counterValue(t, m, "ratelimit_active_keys", map[string]string{"limiter_type": "ip"})
	if got != 7 {
		t.Errorf("active keys = %v, want 7", got)
	}
}

func TestPrometheusMetrics_CheckDuration(t *testing.T) {
	m := NewPrometheusMetrics()
	m.RecordCheckDuration("ip", 3*time.Millisecond)

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, family := range families {
		if family.GetName() != "ratelimit_check_duration_seconds" {
			continue
		}
		if len(family.Metric) != 1 || family.Metric[0].Histogram.GetSampleCount() != 1 {
			t.Errorf("histogram = %+v, want one sample", family.Metric)
		}
		return
	}
	t.Fatal("ratelimit_check_duration_seconds not found")
}

func TestPrometheusMetrics_IsolatedRegistries(t *testing.T) {
	first := NewPrometheusMetrics()
	second := NewPrometheusMetrics()

	first.RecordAllowed("ip", "/api/news")

	got := counterValue(t, second, "ratelimit_requests_total",
		map[string]string{"limiter_type": "ip", "status": "allowed", "path": "/api/news"})
	if got != -1 {
		t.Errorf("second registry should carry no series, got %v", got)
	}
}
