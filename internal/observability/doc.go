// Package observability groups the logging, metrics, and tracing
// infrastructure shared by the aggregation service.
//
// Subpackages:
//   - logging: structured logging with slog and context propagation
//   - metrics: Prometheus registry and recorders for feed and HTTP metrics
//   - tracing: OpenTelemetry tracer and HTTP middleware
package observability
