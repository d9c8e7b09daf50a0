// Command server runs the local aggregation service: it refreshes every
// third-party feed on a schedule behind per-integration circuit breakers and
// serves the last-known snapshots and breaker diagnostics over HTTP for the
// dashboard to poll.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"world-monitor/internal/config"
	"world-monitor/internal/feed"
	handler "world-monitor/internal/handler/http"
	"world-monitor/internal/observability/logging"
	"world-monitor/internal/resilience/circuitbreaker"
	"world-monitor/internal/worker"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("refresh_schedule", cfg.Worker.Schedule),
		slog.Duration("breaker_cooldown", cfg.Breaker.Cooldown),
		slog.Uint64("breaker_failure_threshold", uint64(cfg.Breaker.FailureThreshold)))

	registry := circuitbreaker.NewRegistry()
	store := feed.NewStore(cfg.Worker.SnapshotTTL)

	sources, err := buildSources(logger, cfg, registry, store)
	if err != nil {
		logger.Error("failed to build feed sources", slog.Any("error", err))
		os.Exit(1)
	}

	scheduler, err := worker.NewScheduler(cfg.Worker.Schedule, cfg.Worker.RefreshTimeout, sources, logger)
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := handler.NewRouter(handler.RouterConfig{
		Registry:       registry,
		Store:          store,
		Logger:         logger,
		Version:        version,
		RequestTimeout: cfg.Server.WriteTimeout,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", server.Addr), slog.String("version", version))
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

// buildSources constructs every configured integration. Each gets its own
// breaker registered under its canonical name, its own rate-limited client,
// and the shared snapshot store.
func buildSources(logger *slog.Logger, cfg *config.Config, registry *circuitbreaker.Registry, store *feed.Store) ([]feed.Source, error) {
	httpClient := &http.Client{Timeout: cfg.Feeds.FetchTimeout}

	opts := feed.Options{
		Registry:   registry,
		Store:      store,
		HTTPClient: httpClient,
		Breaker: circuitbreaker.Config{
			FailureThreshold: cfg.Breaker.FailureThreshold,
			Cooldown:         cfg.Breaker.Cooldown,
		},
	}

	var sources []feed.Source

	nws, err := feed.NewNWS(opts)
	if err != nil {
		return nil, err
	}
	sources = append(sources, nws)

	unhcr, err := feed.NewUNHCR(opts)
	if err != nil {
		return nil, err
	}
	sources = append(sources, unhcr)

	if cfg.Feeds.FREDAPIKey != "" {
		fredOpts := opts
		fredOpts.APIKey = cfg.Feeds.FREDAPIKey
		fredOpts.Series = cfg.Feeds.FREDSeries
		fred, err := feed.NewFRED(fredOpts)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fred)
	} else {
		logger.Info("FRED integration disabled, no API key configured")
	}

	opensky, err := feed.NewOpenSky(opts)
	if err != nil {
		return nil, err
	}
	sources = append(sources, opensky)

	polymarket, err := feed.NewPolymarket(opts)
	if err != nil {
		return nil, err
	}
	sources = append(sources, polymarket)

	catalog, err := loadCatalog(logger, cfg.Feeds.NewsCatalogFile)
	if err != nil {
		return nil, err
	}
	news, err := feed.NewNews(opts, catalog)
	if err != nil {
		return nil, err
	}
	sources = append(sources, news)

	reliefweb, err := feed.NewReliefWeb(opts)
	if err != nil {
		return nil, err
	}
	sources = append(sources, reliefweb)

	logger.Info("feed sources initialized", slog.Int("count", len(sources)))
	return sources, nil
}

// loadCatalog reads the news catalog file when one is configured; otherwise
// the built-in catalog is used.
func loadCatalog(logger *slog.Logger, path string) ([]feed.NewsFeed, error) {
	if path == "" {
		return nil, nil
	}
	catalog, err := feed.LoadNewsCatalog(path)
	if err != nil {
		return nil, err
	}
	logger.Info("news catalog loaded", slog.String("file", path), slog.Int("feeds", len(catalog)))
	return catalog, nil
}
