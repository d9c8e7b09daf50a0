package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"world-monitor/internal/handler/http/pathutil"
	"world-monitor/internal/handler/http/responsewriter"
	"world-monitor/internal/observability/metrics"
)

// MetricsMiddleware records request count, duration, and in-flight gauge for
// every request. Paths are normalized so the per-source routes do not blow
// up label cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		normalizedPath := pathutil.NormalizePath(r.URL.Path)
		wrapped := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		status := strconv.Itoa(wrapped.StatusCode())
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, normalizedPath, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, normalizedPath, status).Observe(duration)
	})
}

// MetricsHandler returns the Prometheus metrics endpoint handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
