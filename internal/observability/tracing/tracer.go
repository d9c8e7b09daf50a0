// Package tracing provides OpenTelemetry tracing for the aggregation
// service: a shared tracer plus HTTP middleware that creates a server span
// per request.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the service-wide tracer. Without a configured provider it is a
// no-op, which is the normal mode for a local sidecar.
var tracer = otel.Tracer("world-monitor")

// GetTracer returns the shared tracer for creating spans, e.g. around a
// feed refresh:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "feed.refresh")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
