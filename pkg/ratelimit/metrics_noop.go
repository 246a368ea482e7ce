package ratelimit

import "time"

// NoopMetrics is a Metrics implementation that discards every event. Use it
// in tests or when metrics collection is disabled.
type NoopMetrics struct{}

// NewNoopMetrics creates a NoopMetrics.
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (m *NoopMetrics) RecordAllowed(limiterType, endpoint string)                  {}
func (m *NoopMetrics) RecordDenied(limiterType, endpoint string)                   {}
func (m *NoopMetrics) RecordCheckDuration(limiterType string, d time.Duration)     {}
func (m *NoopMetrics) SetActiveKeys(limiterType string, count int)                 {}
