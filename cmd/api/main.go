package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"golang.org/x/time/rate"

	"globenews/internal/cache"
	"globenews/internal/config"
	"globenews/internal/infra/provider"
	"globenews/internal/observability/metrics"
	"globenews/internal/observability/tracing"
	"globenews/internal/resilience/circuitbreaker"
	"globenews/internal/usecase/headlines"
	pkgcfg "globenews/pkg/config"
	"globenews/pkg/ratelimit"

	hhttp "globenews/internal/handler/http"
	"globenews/internal/handler/http/middleware"
	hnews "globenews/internal/handler/http/news"
	"globenews/internal/handler/http/requestid"
)

func main() {
	_ = godotenv.Load()

	logger := initLogger()

	shutdownTracing, err := tracing.Init("globenews")
	if err != nil {
		logger.Error("failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracing", slog.Any("error", err))
		}
	}()

	cfg := config.Load()
	version := getVersion()

	components := setupServer(logger, cfg, version)
	runServer(logger, cfg, components, version)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler         http.Handler
	Cache           *cache.Store
	RateLimitStore  *ratelimit.MemoryStore
	RateLimitAlgo   *ratelimit.SlidingWindow
	RateLimitConfig *ratelimit.Config
}

// setupServer wires providers, the aggregation service, rate limiting and
// all HTTP routes, returning the assembled handler.
func setupServer(logger *slog.Logger, cfg *config.Config, version string) *ServerComponents {
	endpoints, err := config.LoadProviderEndpoints(os.Getenv("PROVIDERS_CONFIG"))
	if err != nil {
		logger.Error("failed to load provider endpoints", slog.Any("error", err))
		os.Exit(1)
	}

	// One HTTP client for all providers; per-call deadlines come from the
	// aggregator's context, this is just a hard upper bound.
	httpClient := &http.Client{Timeout: 2 * cfg.ProviderTimeout}

	// Outbound limiters keep us inside the free-tier quotas of the
	// upstream APIs even when the cache is cold.
	gnewsBreaker := circuitbreaker.New(circuitbreaker.NewsAPIConfig("gnews"))
	newsapiBreaker := circuitbreaker.New(circuitbreaker.NewsAPIConfig("newsapi"))
	bingBreaker := circuitbreaker.New(circuitbreaker.NewsAPIConfig("bing"))
	nytBreaker := circuitbreaker.New(circuitbreaker.NewsAPIConfig("nyt"))
	breakers := []*circuitbreaker.CircuitBreaker{gnewsBreaker, newsapiBreaker, bingBreaker, nytBreaker}

	// Order defines dedupe priority
	fetchers := []provider.Fetcher{
		provider.NewGNewsClient(endpoints.GNews, cfg.GNewsKey, httpClient,
			rate.NewLimiter(rate.Limit(5), 10), gnewsBreaker),
		provider.NewNewsAPIClient(endpoints.NewsAPI, cfg.NewsAPIKey, httpClient,
			rate.NewLimiter(rate.Limit(5), 10), newsapiBreaker),
		provider.NewBingClient(endpoints.Bing, cfg.BingKey, httpClient,
			rate.NewLimiter(rate.Limit(3), 6), bingBreaker),
		provider.NewNYTClient(endpoints.NYT, cfg.NYTKey, httpClient,
			rate.NewLimiter(rate.Limit(2), 4), nytBreaker),
	}

	cacheStore := cache.New(cfg.CacheTTL, nil)
	svc := headlines.NewService(fetchers, cacheStore, cfg.ProviderTimeout)

	// Rate limiting
	rateLimitConfig := pkgcfg.LoadRateLimitConfig()

	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var ipExtractor middleware.IPExtractor
	if proxyConfig.Enabled {
		ipExtractor = middleware.NewTrustedProxyExtractor(*proxyConfig)
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		ipExtractor = &middleware.RemoteAddrExtractor{}
		logger.Info("rate limiting: using RemoteAddr (secure mode, proxy headers ignored)")
	}

	var ipRateLimiter *middleware.IPRateLimiter
	var ipStore *ratelimit.MemoryStore
	var algorithm *ratelimit.SlidingWindow
	rlMetrics := ratelimit.NewPrometheusMetrics()

	if rateLimitConfig.Enabled {
		ipStore = ratelimit.NewMemoryStore(ratelimit.MemoryStoreConfig{
			MaxKeys: rateLimitConfig.MaxActiveKeys,
		})
		algorithm = ratelimit.NewSlidingWindow(&ratelimit.SystemClock{})

		ipRateLimiter = middleware.NewIPRateLimiter(
			rateLimitConfig,
			ipExtractor,
			ipStore,
			algorithm,
			rlMetrics,
		)

		logger.Info("rate limiting initialized",
			slog.Bool("enabled", true),
			slog.Int("limit", rateLimitConfig.Limit),
			slog.Duration("window", rateLimitConfig.Window),
			slog.Int("max_keys", rateLimitConfig.MaxActiveKeys),
		)
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	mux := http.NewServeMux()
	hnews.Register(mux, svc, logger, !cfg.IsProduction())

	mux.Handle("/health", &hhttp.HealthHandler{
		Version:            version,
		Cache:              cacheStore,
		RateLimitStore:     storeOrNil(ipStore),
		RateLimiterEnabled: rateLimitConfig.Enabled,
		Breakers:           breakers,
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler(rlMetrics.Registry()))

	handler := applyMiddleware(logger, mux, ipRateLimiter)

	return &ServerComponents{
		Handler:         handler,
		Cache:           cacheStore,
		RateLimitStore:  ipStore,
		RateLimitAlgo:   algorithm,
		RateLimitConfig: rateLimitConfig,
	}
}

// storeOrNil converts a possibly-nil concrete store into the Store
// interface without producing a non-nil interface around a nil pointer.
func storeOrNil(s *ratelimit.MemoryStore) ratelimit.Store {
	if s == nil {
		return nil
	}
	return s
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): CORS → Tracing → Request ID → IP Rate Limit →
// Recover → Logging → Input Validation → Body Limit → Timeout → Metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler, ipRateLimiter *middleware.IPRateLimiter) http.Handler {
	corsConfig := middleware.LoadCORSConfig()
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(30 * time.Second)(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)

	if ipRateLimiter != nil {
		chain = ipRateLimiter.Middleware()(chain)
	}

	chain = requestid.Middleware(chain)
	chain = tracing.Middleware(chain)
	chain = middleware.CORS(corsConfig)(chain)

	return chain
}

// runServer starts the HTTP server, the cache sweep schedule and the rate
// limit cleanup loop, then blocks until a shutdown signal arrives.
func runServer(logger *slog.Logger, cfg *config.Config, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if components.RateLimitStore != nil {
		go hhttp.StartRateLimitCleanup(
			ctx,
			components.RateLimitStore,
			components.RateLimitAlgo,
			components.RateLimitConfig.CleanupInterval,
			components.RateLimitConfig.Window,
			"ip",
		)
	}

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.CacheSweepSchedule, func() {
		removed := components.Cache.Sweep()
		metrics.UpdateCacheEntries(components.Cache.Len())
		if removed > 0 {
			logger.Debug("cache sweep completed",
				slog.Int("removed", removed),
				slog.Int("remaining", components.Cache.Len()))
		}
	}); err != nil {
		logger.Error("invalid cache sweep schedule",
			slog.String("schedule", cfg.CacheSweepSchedule),
			slog.Any("error", err))
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	addr := ":" + strconv.Itoa(cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("env", cfg.Env),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
