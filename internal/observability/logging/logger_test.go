package logging

import (
	"context"
	"log/slog"
	"testing"

	"world-monitor/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "default log level", logLevel: ""},
		{name: "debug log level", logLevel: "debug"},
		{name: "unknown level falls back to info", logLevel: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.logLevel != "" {
				t.Setenv("LOG_LEVEL", tt.logLevel)
			}
			assert.NotNil(t, NewLogger())
		})
	}
}

func TestWithRequestID(t *testing.T) {
	logger := slog.Default()

	t.Run("no request id in context", func(t *testing.T) {
		got := WithRequestID(context.Background(), logger)
		assert.Equal(t, logger, got, "logger should be returned unchanged")
	})

	t.Run("request id present", func(t *testing.T) {
		ctx := requestid.WithRequestID(context.Background(), "req-123")
		got := WithRequestID(ctx, logger)
		assert.NotEqual(t, logger, got, "logger should carry the request id")
	})
}

func TestLoggerContext(t *testing.T) {
	logger := NewTextLogger()
	require.NotNil(t, logger)

	ctx := WithLogger(context.Background(), logger)
	assert.Equal(t, logger, FromContext(ctx))

	// Without a stored logger the default is returned.
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}
