package http

import (
	"net/http"
	"time"

	"world-monitor/internal/feed"
	"world-monitor/internal/handler/http/respond"
	"world-monitor/internal/resilience/circuitbreaker"
)

// HealthResponse is the JSON body of the health check endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports service health. The service is "healthy" while it is
// serving; an open breaker degrades its integration's check but never the
// whole service, because the API keeps serving last-known snapshots.
type HealthHandler struct {
	Registry *circuitbreaker.Registry
	Store    *feed.Store
	Version  string
}

// ServeHTTP handles GET /healthz. It returns 200 even when integrations are
// degraded; 503 would make orchestrators restart a service that is doing
// exactly what it should during an upstream outage.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)
	degraded := 0

	for _, cb := range h.Registry.All() {
		check := CheckStatus{
			Status:  "healthy",
			Message: cb.Status(),
		}
		if cb.IsOpen() {
			check.Status = "degraded"
			degraded++
		}
		if snap, ok := h.Store.Get(cb.Name()); ok {
			check.Details = map[string]any{
				"snapshot_items": snap.Items,
				"snapshot_age":   time.Since(snap.FetchedAt).Round(time.Second).String(),
			}
		}
		checks[cb.Name()] = check
	}

	status := "healthy"
	if degraded > 0 {
		status = "degraded"
	}

	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}
