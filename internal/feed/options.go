package feed

import (
	"net/http"
	"strings"

	"world-monitor/internal/resilience/circuitbreaker"
)

// Options carries the shared wiring every source constructor needs. One
// Options value is built per source by the caller; sources never share
// breakers or rate limiters.
type Options struct {
	// Registry receives the source's breaker so the diagnostics surface
	// can enumerate it. Optional: without a registry the source still
	// owns a private breaker.
	Registry *circuitbreaker.Registry

	// Store receives the source's snapshots. Required.
	Store *Store

	// HTTPClient is the outbound client; nil means http.DefaultClient.
	// Callers are expected to set a timeout on it, since the breaker
	// itself never bounds operation latency.
	HTTPClient *http.Client

	// BaseURL overrides the integration's default upstream, mainly for
	// tests and self-hosted mirrors.
	BaseURL string

	// APIKey authenticates integrations that need one (e.g. FRED).
	APIKey string

	// Series selects the series identifiers for series-oriented
	// integrations.
	Series []string

	// Breaker tunes the source's circuit breaker. An empty Name means
	// the integration's canonical name.
	Breaker circuitbreaker.Config
}

// breaker builds (or fetches from the registry) the breaker for a source.
func (o Options) breaker(defaultName string) (*circuitbreaker.CircuitBreaker, error) {
	cfg := o.Breaker
	if cfg.Name == "" {
		cfg.Name = defaultName
	}
	if o.Registry != nil {
		return o.Registry.GetOrCreate(cfg)
	}
	return circuitbreaker.New(cfg)
}

// baseURL returns the configured upstream with a trailing slash trimmed, or
// the integration default.
func (o Options) baseURL(def string) string {
	if o.BaseURL == "" {
		return def
	}
	return strings.TrimRight(o.BaseURL, "/")
}
