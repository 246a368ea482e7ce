// Package config loads the application configuration from the environment
// and from an optional provider override file.
package config

import (
	"time"

	pkgcfg "globenews/pkg/config"
)

// Config holds the runtime configuration for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int

	// Env is the deployment environment. Error details are attached to
	// 500 responses only when Env is not "production".
	Env string

	// Provider API keys. A missing key is not an error: the provider's
	// call simply fails upstream and contributes no articles.
	GNewsKey   string
	NewsAPIKey string
	BingKey    string
	NYTKey     string

	// ProviderTimeout bounds each upstream call.
	ProviderTimeout time.Duration

	// CacheTTL is how long aggregated results stay cached.
	CacheTTL time.Duration

	// CacheSweepSchedule is the cron spec for the expired-entry sweep.
	CacheSweepSchedule string
}

// Load reads the application configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:               pkgcfg.GetEnvInt("PORT", 4000),
		Env:                pkgcfg.GetEnvString("APP_ENV", "development"),
		GNewsKey:           pkgcfg.GetEnvString("GNEWS_KEY", ""),
		NewsAPIKey:         pkgcfg.GetEnvString("NEWSAPI_KEY", ""),
		BingKey:            pkgcfg.GetEnvString("BING_KEY", ""),
		NYTKey:             pkgcfg.GetEnvString("NYT_KEY", ""),
		ProviderTimeout:    pkgcfg.GetEnvDuration("PROVIDER_TIMEOUT", 5*time.Second),
		CacheTTL:           pkgcfg.GetEnvDuration("CACHE_TTL", 300*time.Second),
		CacheSweepSchedule: pkgcfg.GetEnvString("CACHE_SWEEP_SCHEDULE", "@every 5m"),
	}
}

// IsProduction reports whether the server runs in production mode, which
// suppresses error details in 500 responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
