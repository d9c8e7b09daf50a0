package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupExporter(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
	})
	return exporter, tp
}

func TestMiddleware_CreatesServerSpan(t *testing.T) {
	exporter, tp := setupExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/status", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name != "GET /api/status" {
		t.Errorf("unexpected span name %q", spans[0].Name)
	}

	var gotStatus int64 = -1
	for _, attr := range spans[0].Attributes {
		if attr.Key == "http.status_code" {
			gotStatus = attr.Value.AsInt64()
		}
	}
	if gotStatus != 200 {
		t.Errorf("expected http.status_code=200, got %d", gotStatus)
	}

	if rr.Header().Get("X-Trace-Id") == "" {
		t.Error("expected X-Trace-Id response header")
	}
}

func TestMiddleware_MarksServerErrors(t *testing.T) {
	exporter, tp := setupExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/feeds", nil))

	_ = tp.ForceFlush(context.Background())

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	foundError := false
	for _, attr := range spans[0].Attributes {
		if attr.Key == "error" && attr.Value.AsBool() {
			foundError = true
		}
	}
	if !foundError {
		t.Error("expected error attribute on 5xx response")
	}
}
