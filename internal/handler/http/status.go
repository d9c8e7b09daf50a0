// Package http provides the HTTP surface of the aggregation service: the
// feed snapshot and breaker status endpoints the dashboard polls, health
// checks, Prometheus metrics, and the middleware stack around them.
package http

import (
	"net/http"
	"time"

	"world-monitor/internal/handler/http/respond"
	"world-monitor/internal/resilience/circuitbreaker"
)

// BreakerStatus is the diagnostics view of one integration's breaker.
type BreakerStatus struct {
	Name                string     `json:"name"`
	State               string     `json:"state"`
	Display             string     `json:"display"`
	ConsecutiveFailures uint32     `json:"consecutive_failures"`
	LastError           string     `json:"last_error,omitempty"`
	LastSuccess         *time.Time `json:"last_success,omitempty"`
}

// StatusHandler serves breaker diagnostics for every registered integration.
type StatusHandler struct {
	Registry *circuitbreaker.Registry
}

func breakerStatus(cb *circuitbreaker.CircuitBreaker) BreakerStatus {
	st := BreakerStatus{
		Name:                cb.Name(),
		State:               cb.State().String(),
		Display:             cb.Status(),
		ConsecutiveFailures: cb.ConsecutiveFailures(),
	}
	if err := cb.LastError(); err != nil {
		st.LastError = err.Error()
	}
	if last := cb.LastSuccess(); !last.IsZero() {
		st.LastSuccess = &last
	}
	return st
}

// ServeHTTP handles GET /api/status and GET /api/status/{source}.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.ErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if source := r.PathValue("source"); source != "" {
		cb, ok := h.Registry.Get(source)
		if !ok {
			respond.ErrorMessage(w, http.StatusNotFound, "unknown source")
			return
		}
		respond.JSON(w, http.StatusOK, breakerStatus(cb))
		return
	}

	breakers := h.Registry.All()
	statuses := make([]BreakerStatus, 0, len(breakers))
	for _, cb := range breakers {
		statuses = append(statuses, breakerStatus(cb))
	}
	respond.JSON(w, http.StatusOK, map[string]any{"breakers": statuses})
}
