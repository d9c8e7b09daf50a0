// Package circuitbreaker wraps every outbound call to an external data feed
// with a per-integration circuit breaker. It uses the github.com/sony/gobreaker
// library to track feed health, short-circuit calls to failing upstreams, and
// always hand the caller a usable value (real or fallback).
package circuitbreaker

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// ErrMissingName is returned by New when Config.Name is empty.
// A missing name is a programming error, not a runtime condition.
var ErrMissingName = errors.New("circuit breaker name is required")

const (
	// DefaultFailureThreshold is the number of consecutive failures that
	// trips a breaker from closed to open.
	DefaultFailureThreshold uint32 = 3

	// DefaultCooldown is the minimum time a breaker stays open before a
	// single probe call is allowed through.
	DefaultCooldown = 30 * time.Second
)

// Config holds the configuration for one integration's circuit breaker.
type Config struct {
	// Name is the human-readable integration label (e.g. "NWS Weather"),
	// used for diagnostics, logging, and metrics. Required.
	Name string

	// FailureThreshold is the number of consecutive failures required to
	// trip the breaker open. Zero means DefaultFailureThreshold.
	FailureThreshold uint32

	// Cooldown is how long the breaker stays open before the next call is
	// allowed to probe the upstream. Zero means DefaultCooldown.
	Cooldown time.Duration
}

// DefaultConfig returns the default breaker configuration for an integration.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FailureThreshold: DefaultFailureThreshold,
		Cooldown:         DefaultCooldown,
	}
}

// CircuitBreaker is a per-integration health state machine. It executes a
// supplied operation, classifies success/failure, and transitions between
// closed, open, and half-open states:
//
//	closed    --(FailureThreshold consecutive failures)--> open
//	open      --(Cooldown elapsed, next call)--> half-open
//	half-open --(probe succeeds)--> closed
//	half-open --(probe fails)--> open (cooldown restarts)
//
// While open, calls are rejected without touching the upstream. While
// half-open, exactly one probe runs at a time; concurrent callers are
// rejected rather than dispatching a second upstream call.
type CircuitBreaker struct {
	name      string
	threshold uint32
	cooldown  time.Duration
	breaker   *gobreaker.CircuitBreaker

	mu          sync.Mutex
	failStreak  uint32
	lastError   error
	lastErrorAt time.Time
	lastSuccess time.Time
	openedAt    time.Time
}

// New creates a circuit breaker bound to the given configuration.
// It fails only on an empty name; threshold and cooldown fall back to the
// package defaults when unset.
func New(cfg Config) (*CircuitBreaker, error) {
	if cfg.Name == "" {
		return nil, ErrMissingName
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultFailureThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}

	cb := &CircuitBreaker{
		name:      cfg.Name,
		threshold: cfg.FailureThreshold,
		cooldown:  cfg.Cooldown,
	}

	settings := gobreaker.Settings{
		Name: cfg.Name,
		// Admit exactly one probe while half-open. gobreaker's internal
		// mutex makes this the probe-in-flight guard: racing callers at
		// the open->half-open boundary get ErrTooManyRequests instead of
		// dispatching a second upstream call.
		MaxRequests: 1,
		// Interval zero: closed-state counts are never age-cleared, so the
		// consecutive-failure count resets only on an actual success.
		Interval: 0,
		Timeout:  cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: cb.onStateChange,
	}
	cb.breaker = gobreaker.NewCircuitBreaker(settings)

	observeState(cfg.Name, cb.breaker.State())

	return cb, nil
}

// Execute runs the operation through the breaker and propagates its error.
// It returns gobreaker.ErrOpenState when the breaker is open and
// gobreaker.ErrTooManyRequests when a half-open probe is already in flight.
// Most callers want Do, which folds all of those into a fallback value.
func (cb *CircuitBreaker) Execute(op func() (any, error)) (any, error) {
	result, err := cb.breaker.Execute(op)
	cb.record(err)
	return result, err
}

// Do runs op through the breaker and always returns a usable value. Any
// failure of op, a short-circuited call while the breaker is open, or a
// rejected concurrent probe yields fallback instead of an error. fallback is
// returned as supplied, never mutated.
func Do[T any](cb *CircuitBreaker, op func() (T, error), fallback T) T {
	result, err := cb.Execute(func() (any, error) {
		return op()
	})
	if err != nil {
		slog.Debug("circuit breaker returned fallback",
			slog.String("circuit", cb.name),
			slog.String("state", cb.breaker.State().String()),
			slog.Any("error", err))
		return fallback
	}

	value, ok := result.(T)
	if !ok {
		// Only reachable if op's closure is miswired; treat as a failure.
		slog.Error("circuit breaker result has unexpected type",
			slog.String("circuit", cb.name))
		return fallback
	}
	return value
}

// record classifies an Execute outcome for diagnostics and metrics.
func (cb *CircuitBreaker) record(err error) {
	now := time.Now()

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		// The operation never ran; not a failure of the upstream.
		observeResult(cb.name, outcomeShortCircuit)
		return
	}

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failStreak++
		cb.lastError = err
		cb.lastErrorAt = now
		observeResult(cb.name, outcomeFailure)
		return
	}
	cb.failStreak = 0
	cb.lastSuccess = now
	observeResult(cb.name, outcomeSuccess)
}

// onStateChange is wired into gobreaker and fires on every transition.
func (cb *CircuitBreaker) onStateChange(name string, from, to gobreaker.State) {
	if to == gobreaker.StateOpen {
		cb.mu.Lock()
		cb.openedAt = time.Now()
		cb.mu.Unlock()
		observeTrip(name)
	}
	observeState(name, to)

	slog.Warn("circuit breaker state changed",
		slog.String("circuit", name),
		slog.String("from", from.String()),
		slog.String("to", to.String()))
}

// Name returns the integration label the breaker was created with.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// Config returns the effective configuration the breaker runs with,
// defaults applied.
func (cb *CircuitBreaker) Config() Config {
	return Config{
		Name:             cb.name,
		FailureThreshold: cb.threshold,
		Cooldown:         cb.cooldown,
	}
}

// State returns the current state of the breaker.
// Querying the state of an open breaker whose cooldown has elapsed reports
// half-open; the probe itself still only happens on the next Execute.
func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

// IsOpen returns true if the breaker is currently rejecting calls.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// ConsecutiveFailures returns the number of operation failures since the
// last success. Diagnostic only; the tripping decision uses gobreaker's
// internal counts.
func (cb *CircuitBreaker) ConsecutiveFailures() uint32 {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failStreak
}

// LastError returns the most recent operation failure, or nil.
func (cb *CircuitBreaker) LastError() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.lastError
}

// LastSuccess returns when the last operation succeeded.
// The zero time means no call has succeeded yet.
func (cb *CircuitBreaker) LastSuccess() time.Time {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.lastSuccess
}

// Status returns a one-line human-readable summary of the breaker, suitable
// for direct display in a diagnostics panel.
func (cb *CircuitBreaker) Status() string {
	state := cb.breaker.State()

	cb.mu.Lock()
	streak := cb.failStreak
	openedAt := cb.openedAt
	lastSuccess := cb.lastSuccess
	cb.mu.Unlock()

	switch state {
	case gobreaker.StateOpen:
		remaining := time.Until(openedAt.Add(cb.cooldown)).Round(time.Second)
		if remaining < 0 {
			remaining = 0
		}
		return fmt.Sprintf("%s: open after %d consecutive failures, retry in %s",
			cb.name, streak, remaining)
	case gobreaker.StateHalfOpen:
		return fmt.Sprintf("%s: half-open, probing upstream", cb.name)
	default:
		if streak > 0 {
			return fmt.Sprintf("%s: closed, %d recent failures", cb.name, streak)
		}
		if !lastSuccess.IsZero() {
			return fmt.Sprintf("%s: closed, last success %s ago",
				cb.name, time.Since(lastSuccess).Round(time.Second))
		}
		return fmt.Sprintf("%s: closed", cb.name)
	}
}
