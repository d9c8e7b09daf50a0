package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cycleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refresh_cycle_total",
			Help: "Total refresh cycles by outcome",
		},
		[]string{"status"},
	)

	cycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "refresh_cycle_duration_seconds",
			Help:    "Duration of one full refresh cycle",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	lastCycleTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "refresh_cycle_last_completed_timestamp_seconds",
			Help: "Unix timestamp of the last completed refresh cycle",
		},
	)
)

func recordCycle(status string, duration time.Duration) {
	cycleTotal.WithLabelValues(status).Inc()
	cycleDuration.Observe(duration.Seconds())
	lastCycleTimestamp.SetToCurrentTime()
}
