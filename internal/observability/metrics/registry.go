// Package metrics provides the centralized Prometheus metrics for the
// aggregation service. All metrics register with the default registry and
// are exposed via the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track the local API's request patterns.
var (
	// HTTPRequestsTotal counts requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures request latency. Buckets cover the
	// local API's expected range: sub-millisecond cache hits up to slow
	// aggregate queries.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks requests currently being served.
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Feed metrics track the refresh cycles of each integration.
var (
	// FeedRefreshTotal counts refresh outcomes per integration. Status is
	// "success" when real data was fetched and "fallback" when the
	// breaker returned the fallback value.
	FeedRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_refresh_total",
			Help: "Total feed refresh cycles by source and outcome",
		},
		[]string{"source", "status"},
	)

	// FeedRefreshDuration measures how long one refresh of a source takes.
	FeedRefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_refresh_duration_seconds",
			Help:    "Feed refresh duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// FeedItems reports the item count in each source's latest snapshot.
	FeedItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feed_items",
			Help: "Number of items in the latest snapshot per source",
		},
		[]string{"source"},
	)

	// FeedSnapshotTimestamp reports when each source last produced real
	// data, as a Unix timestamp. Staleness alerts derive from this.
	FeedSnapshotTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feed_snapshot_timestamp_seconds",
			Help: "Unix timestamp of the latest successful snapshot per source",
		},
		[]string{"source"},
	)
)
