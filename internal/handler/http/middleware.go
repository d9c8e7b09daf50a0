package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"world-monitor/internal/handler/http/requestid"
	"world-monitor/internal/handler/http/respond"
	"world-monitor/internal/handler/http/responsewriter"
)

// Logging returns middleware that logs HTTP requests with structured logging.
// It captures request details, response status, size, and processing
// duration, and includes the OpenTelemetry trace ID so logs correlate with
// traces.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := responsewriter.Wrap(w)
			next.ServeHTTP(wrapped, r)

			reqID := requestid.FromContext(r.Context())
			span := trace.SpanFromContext(r.Context())
			traceID := span.SpanContext().TraceID().String()

			logger.Info("request completed",
				slog.String("request_id", reqID),
				slog.String("trace_id", traceID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", wrapped.StatusCode()),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recover returns middleware that catches panics, logs them with a stack
// trace, and returns a 500 response instead of crashing the server.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered",
						slog.String("request_id", requestid.FromContext(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)
					respond.Error(w, http.StatusInternalServerError, fmt.Errorf("internal error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout returns middleware that enforces request timeouts. If a request
// takes longer than the specified duration it returns 504 Gateway Timeout.
// A mutex serializes the handler goroutine and the timeout path so only one
// of them writes to the response.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			done := make(chan struct{})
			var mu sync.Mutex
			timedOut := false

			wrapped := &timeoutResponseWriter{
				ResponseWriter: w,
				mu:             &mu,
				timedOut:       &timedOut,
			}

			go func() {
				next.ServeHTTP(wrapped, r)
				close(done)
			}()

			select {
			case <-done:
				return
			case <-ctx.Done():
				mu.Lock()
				timedOut = true
				if !wrapped.written {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_, _ = w.Write([]byte(`{"error":"request timeout"}`))
				}
				mu.Unlock()
			}
		})
	}
}

// timeoutResponseWriter prevents writes after the timeout response was sent.
type timeoutResponseWriter struct {
	http.ResponseWriter
	mu       *sync.Mutex
	timedOut *bool
	written  bool
}

func (w *timeoutResponseWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if *w.timedOut {
		return
	}
	w.written = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *timeoutResponseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if *w.timedOut {
		return 0, nil
	}
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Chain applies middleware to a handler in the order given: the first
// middleware is the outermost.
func Chain(h http.Handler, middleware ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}
