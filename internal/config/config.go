// Package config loads service configuration from environment variables.
// Every setting has a default so the service runs with no configuration at
// all; validation catches values that would misbehave at runtime.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the full configuration of the aggregation service.
type Config struct {
	Server  ServerConfig
	Worker  WorkerConfig
	Breaker BreakerConfig
	Feeds   FeedsConfig
}

// ServerConfig holds the local API server settings.
type ServerConfig struct {
	// Port the API listens on. The dashboard expects its sidecar on
	// 46123. Env: PORT
	Port int

	// ReadTimeout for inbound requests. Env: SERVER_READ_TIMEOUT
	ReadTimeout time.Duration

	// WriteTimeout for inbound responses. Env: SERVER_WRITE_TIMEOUT
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown. Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration
}

// WorkerConfig holds the refresh scheduler settings.
type WorkerConfig struct {
	// Schedule is a cron expression (robfig/cron syntax, @every accepted)
	// for the refresh cycle. Default: every 2 minutes. Env: REFRESH_SCHEDULE
	Schedule string

	// RefreshTimeout bounds one full refresh cycle across all sources.
	// Env: REFRESH_TIMEOUT
	RefreshTimeout time.Duration

	// SnapshotTTL is how long a last-known snapshot stays servable
	// without a successful refresh. Zero keeps snapshots forever.
	// Env: SNAPSHOT_TTL
	SnapshotTTL time.Duration
}

// BreakerConfig holds the circuit breaker defaults applied to every
// integration.
type BreakerConfig struct {
	// FailureThreshold is the consecutive-failure count that opens a
	// breaker. Env: BREAKER_FAILURE_THRESHOLD
	FailureThreshold uint32

	// Cooldown is how long an open breaker waits before probing.
	// Env: BREAKER_COOLDOWN
	Cooldown time.Duration
}

// FeedsConfig holds per-integration settings.
type FeedsConfig struct {
	// FREDAPIKey authenticates against the St. Louis Fed API. When
	// empty the FRED integration is disabled. Env: FRED_API_KEY
	FREDAPIKey string

	// FREDSeries selects the economic series to track, comma separated.
	// Env: FRED_SERIES
	FREDSeries []string

	// NewsCatalogFile points at a YAML catalog of RSS feeds. Empty uses
	// the built-in catalog. Env: FEEDS_FILE
	NewsCatalogFile string

	// FetchTimeout bounds each outbound HTTP request. Env: FETCH_TIMEOUT
	FetchTimeout time.Duration
}

// Load builds the configuration from the environment, applying defaults for
// everything unset.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvInt("PORT", 46123),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Worker: WorkerConfig{
			Schedule:       getEnvOrDefault("REFRESH_SCHEDULE", "@every 2m"),
			RefreshTimeout: getEnvDuration("REFRESH_TIMEOUT", 90*time.Second),
			SnapshotTTL:    getEnvDuration("SNAPSHOT_TTL", 0),
		},
		Breaker: BreakerConfig{
			FailureThreshold: uint32(getEnvInt("BREAKER_FAILURE_THRESHOLD", 3)),
			Cooldown:         getEnvDuration("BREAKER_COOLDOWN", 30*time.Second),
		},
		Feeds: FeedsConfig{
			FREDAPIKey:      os.Getenv("FRED_API_KEY"),
			FREDSeries:      getEnvList("FRED_SERIES", nil),
			NewsCatalogFile: os.Getenv("FEEDS_FILE"),
			FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	if c.Worker.Schedule == "" {
		return fmt.Errorf("REFRESH_SCHEDULE cannot be empty")
	}

	if c.Worker.RefreshTimeout <= 0 {
		return fmt.Errorf("REFRESH_TIMEOUT must be positive")
	}

	if c.Worker.SnapshotTTL < 0 {
		return fmt.Errorf("SNAPSHOT_TTL cannot be negative")
	}

	if c.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be positive")
	}

	if c.Breaker.Cooldown <= 0 {
		return fmt.Errorf("BREAKER_COOLDOWN must be positive")
	}

	if c.Feeds.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses integer environment variable with default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration parses duration environment variable with default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvList parses a comma-separated environment variable with default.
// Blank entries are dropped.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
