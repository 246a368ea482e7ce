package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"RATELIMIT_ENABLED", "RATELIMIT_LIMIT", "RATELIMIT_WINDOW",
		"RATELIMIT_MAX_KEYS", "RATELIMIT_CLEANUP_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("Enabled = false, want true by default")
	}
	if cfg.Limit != 100 {
		t.Errorf("Limit = %d, want 100", cfg.Limit)
	}
	if cfg.Window != 15*time.Minute {
		t.Errorf("Window = %v, want 15m", cfg.Window)
	}
	if cfg.MaxActiveKeys != 10000 {
		t.Errorf("MaxActiveKeys = %d, want 10000", cfg.MaxActiveKeys)
	}
	if cfg.CleanupInterval != 5*time.Minute {
		t.Errorf("CleanupInterval = %v, want 5m", cfg.CleanupInterval)
	}
}

func TestLoadRateLimitConfig_FromEnv(t *testing.T) {
	t.Setenv("RATELIMIT_ENABLED", "false")
	t.Setenv("RATELIMIT_LIMIT", "50")
	t.Setenv("RATELIMIT_WINDOW", "1m")

	cfg := LoadRateLimitConfig()
	if cfg.Enabled {
		t.Error("Enabled = true, want false")
	}
	if cfg.Limit != 50 {
		t.Errorf("Limit = %d, want 50", cfg.Limit)
	}
	if cfg.Window != time.Minute {
		t.Errorf("Window = %v, want 1m", cfg.Window)
	}
}

func TestLoadRateLimitConfig_InvalidValuesCoerced(t *testing.T) {
	t.Setenv("RATELIMIT_LIMIT", "-5")
	t.Setenv("RATELIMIT_WINDOW", "-1m")
	t.Setenv("RATELIMIT_MAX_KEYS", "0")

	cfg := LoadRateLimitConfig()
	if cfg.Limit != 100 {
		t.Errorf("Limit = %d, want default 100", cfg.Limit)
	}
	if cfg.Window != 15*time.Minute {
		t.Errorf("Window = %v, want default 15m", cfg.Window)
	}
	if cfg.MaxActiveKeys != 10000 {
		t.Errorf("MaxActiveKeys = %d, want default 10000", cfg.MaxActiveKeys)
	}
}

func TestValidatePositiveDuration(t *testing.T) {
	if err := ValidatePositiveDuration(time.Second); err != nil {
		t.Errorf("ValidatePositiveDuration(1s) = %v, want nil", err)
	}
	if err := ValidatePositiveDuration(0); err == nil {
		t.Error("ValidatePositiveDuration(0) = nil, want error")
	}
	if err := ValidatePositiveDuration(-time.Second); err == nil {
		t.Error("ValidatePositiveDuration(-1s) = nil, want error")
	}
}

func TestValidateDurationRange(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		min, max time.Duration
		wantErr  bool
	}{
		{name: "within range", d: time.Minute, min: time.Second, max: time.Hour},
		{name: "at lower bound", d: time.Second, min: time.Second, max: time.Hour},
		{name: "below range", d: time.Millisecond, min: time.Second, max: time.Hour, wantErr: true},
		{name: "above range", d: 2 * time.Hour, min: time.Second, max: time.Hour, wantErr: true},
		{name: "inverted range", d: time.Minute, min: time.Hour, max: time.Second, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDurationRange(tt.d, tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDurationRange() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
