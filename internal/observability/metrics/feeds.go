package metrics

import (
	"time"
)

// RecordFeedRefresh records the outcome of one refresh cycle for a source.
// usedFallback is true when the circuit breaker returned the fallback value
// instead of real upstream data.
func RecordFeedRefresh(source string, usedFallback bool, duration time.Duration) {
	status := "success"
	if usedFallback {
		status = "fallback"
	}
	FeedRefreshTotal.WithLabelValues(source, status).Inc()
	FeedRefreshDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordFeedSnapshot records the size and time of a source's latest real
// snapshot.
func RecordFeedSnapshot(source string, items int, at time.Time) {
	FeedItems.WithLabelValues(source).Set(float64(items))
	FeedSnapshotTimestamp.WithLabelValues(source).Set(float64(at.Unix()))
}
