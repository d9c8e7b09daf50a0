// Package retry provides bounded retry with exponential backoff and jitter
// for transient upstream failures. Feed fetchers use it inside the operation
// they hand to the circuit breaker, so a refresh counts as one failure toward
// the breaker no matter how many attempts it burned internally.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config holds the retry policy for one call site.
type Config struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// InitialDelay is the wait before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration

	// Multiplier grows the delay between attempts.
	Multiplier float64

	// JitterFraction adds up to this fraction of the delay as random
	// jitter (0.0 to 1.0).
	JitterFraction float64
}

// DefaultConfig returns a general-purpose retry policy.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// FeedFetchConfig returns the policy for JSON/RSS feed refreshes. Attempts
// are kept low so a degraded upstream fails a refresh quickly and the
// circuit breaker, not the retry loop, absorbs a sustained outage.
func FeedFetchConfig() Config {
	return Config{
		MaxAttempts:    2,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       2 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// WithBackoff runs fn up to cfg.MaxAttempts times, backing off between
// attempts. It returns nil on the first success, the error unchanged when it
// is not retryable, and a wrapped last error once attempts are exhausted.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsRetryable(lastErr) {
			return lastErr
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
		delay = addJitter(delay, cfg.JitterFraction)
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

// IsRetryable reports whether an error is a transient condition worth another
// attempt. Context cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode >= 500 && httpErr.StatusCode < 600:
			return true
		case httpErr.StatusCode == http.StatusTooManyRequests:
			return true
		case httpErr.StatusCode == http.StatusRequestTimeout:
			return true
		}
	}

	return false
}

// HTTPError is a non-success HTTP status raised by a fetcher. Fetchers
// return it so the retry policy can tell a 503 from a 404.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// addJitter spreads retries out so callers sharing an upstream do not
// synchronize their attempts.
func addJitter(duration time.Duration, jitterFraction float64) time.Duration {
	if jitterFraction <= 0 {
		return duration
	}
	if jitterFraction > 1.0 {
		jitterFraction = 1.0
	}
	// #nosec G404 -- jitter does not need cryptographic randomness.
	jitter := time.Duration(rand.Float64() * float64(duration) * jitterFraction)
	return duration + jitter
}
