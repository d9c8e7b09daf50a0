package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

const (
	outcomeSuccess      = "success"
	outcomeFailure      = "failure"
	outcomeShortCircuit = "short_circuit"
)

var (
	// breakerState reports the current state per integration:
	// 0=closed, 1=half-open, 2=open.
	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"circuit"},
	)

	// breakerTrips counts closed-to-open and half-open-to-open transitions.
	breakerTrips = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_trips_total",
			Help: "Total number of times a circuit breaker has opened",
		},
		[]string{"circuit"},
	)

	// breakerRequests counts Execute outcomes. short_circuit means the
	// operation was never dispatched (breaker open or probe in flight).
	breakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total circuit breaker calls by outcome",
		},
		[]string{"circuit", "outcome"},
	)
)

func observeState(circuit string, state gobreaker.State) {
	var v float64
	switch state {
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	breakerState.WithLabelValues(circuit).Set(v)
}

func observeTrip(circuit string) {
	breakerTrips.WithLabelValues(circuit).Inc()
}

func observeResult(circuit, outcome string) {
	breakerRequests.WithLabelValues(circuit, outcome).Inc()
}
