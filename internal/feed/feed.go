// Package feed contains the data-fetch collaborators of the aggregation
// service. Each integration owns one named circuit breaker; every refresh
// goes through it and always produces a usable value, so a failing upstream
// degrades a panel to its last-known snapshot instead of an error.
package feed

import (
	"context"
	"log/slog"
	"time"

	"world-monitor/internal/observability/metrics"
	"world-monitor/internal/resilience/circuitbreaker"
)

// Source is one integration: a named upstream plus the logic to refresh its
// snapshot.
type Source interface {
	// Name returns the integration label, shared with its circuit breaker.
	Name() string

	// Refresh fetches the latest data and updates the snapshot store.
	// It never fails: a refresh that could not produce real data leaves
	// the previous snapshot in place.
	Refresh(ctx context.Context)
}

// refresh runs one fetch through the integration's breaker and records the
// outcome. The empty slice is the fallback value; the snapshot store is only
// overwritten when the fetch produced real data, so the last-known snapshot
// survives an outage.
func refresh[T any](ctx context.Context, name string, cb *circuitbreaker.CircuitBreaker, store *Store, fetch func(context.Context) ([]T, error)) {
	start := time.Now()

	fetched := false
	items := circuitbreaker.Do(cb, func() ([]T, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		fetched = true
		return v, nil
	}, []T{})

	duration := time.Since(start)
	metrics.RecordFeedRefresh(name, !fetched, duration)

	if !fetched {
		slog.Debug("feed refresh kept last-known snapshot",
			slog.String("source", name),
			slog.String("breaker", cb.Status()))
		return
	}

	now := time.Now()
	store.Put(name, len(items), items)
	metrics.RecordFeedSnapshot(name, len(items), now)

	slog.Info("feed refreshed",
		slog.String("source", name),
		slog.Int("items", len(items)),
		slog.Duration("duration", duration))
}
