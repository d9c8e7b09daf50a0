package http

import (
	"log/slog"
	"net/http"
	"time"

	"world-monitor/internal/feed"
	"world-monitor/internal/handler/http/requestid"
	"world-monitor/internal/observability/tracing"
	"world-monitor/internal/resilience/circuitbreaker"
)

// RouterConfig carries the dependencies of the API surface.
type RouterConfig struct {
	Registry       *circuitbreaker.Registry
	Store          *feed.Store
	Logger         *slog.Logger
	Version        string
	RequestTimeout time.Duration
}

// NewRouter builds the service mux with the full middleware stack: panic
// recovery outermost, then request IDs, tracing, metrics, logging, and the
// request timeout.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	mux := http.NewServeMux()

	statusHandler := &StatusHandler{Registry: cfg.Registry}
	feedsHandler := &FeedsHandler{Store: cfg.Store}
	healthHandler := &HealthHandler{Registry: cfg.Registry, Store: cfg.Store, Version: cfg.Version}

	mux.Handle("GET /healthz", healthHandler)
	mux.Handle("GET /api/status", statusHandler)
	mux.Handle("GET /api/status/{source}", statusHandler)
	mux.Handle("GET /api/feeds", feedsHandler)
	mux.Handle("GET /api/feeds/{source}", feedsHandler)
	mux.Handle("GET /metrics", MetricsHandler())

	return Chain(mux,
		Recover(cfg.Logger),
		requestid.Middleware,
		tracing.Middleware,
		MetricsMiddleware,
		Logging(cfg.Logger),
		Timeout(cfg.RequestTimeout),
	)
}
