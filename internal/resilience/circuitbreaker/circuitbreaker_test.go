package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestNewsAPIConfig(t *testing.T) {
	cfg := NewsAPIConfig("gnews")
	if cfg.Name != "gnews" {
		t.Errorf("Name = %q, want gnews", cfg.Name)
	}
	if cfg.FailureThreshold != 0.7 {
		t.Errorf("FailureThreshold = %v, want 0.7", cfg.FailureThreshold)
	}
	if cfg.MinRequests != 5 {
		t.Errorf("MinRequests = %d, want 5", cfg.MinRequests)
	}
}

func TestCircuitBreaker_PassesThroughResults(t *testing.T) {
	cb := New(NewsAPIConfig("test"))

	got, err := cb.Execute(func() (interface{}, error) { return "payload", nil })
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != "payload" {
		t.Errorf("Execute() = %v, want payload", got)
	}

	wantErr := errors.New("upstream failure")
	if _, err := cb.Execute(func() (interface{}, error) { return nil, wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("Execute() error = %v, want the callback's error", err)
	}
}

func TestCircuitBreaker_TripsAfterRepeatedFailures(t *testing.T) {
	cb := New(Config{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.7,
		MinRequests:      5,
	})

	boom := errors.New("boom")
	for i := 0; i < 5; i++ {
		if cb.State() != gobreaker.StateClosed {
			t.Fatalf("breaker opened after %d failures, want 5", i)
		}
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}

	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open after hitting the failure threshold", cb.State())
	}

	called := false
	_, err := cb.Execute(func() (interface{}, error) {
		called = true
		return nil, nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Execute() error = %v, want ErrOpenState", err)
	}
	if called {
		t.Error("open breaker must not invoke the callback")
	}
}

func TestCircuitBreaker_BelowMinRequestsStaysClosed(t *testing.T) {
	cb := New(NewsAPIConfig("test"))

	boom := errors.New("boom")
	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("state = %v, want closed below the minimum sample size", cb.State())
	}
}

func TestCircuitBreaker_Name(t *testing.T) {
	if got := New(NewsAPIConfig("bing")).Name(); got != "bing" {
		t.Errorf("Name() = %q, want bing", got)
	}
}
