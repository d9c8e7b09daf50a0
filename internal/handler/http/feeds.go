package http

import (
	"net/http"

	"world-monitor/internal/feed"
	"world-monitor/internal/handler/http/respond"
)

// FeedsHandler serves the last-known snapshots the dashboard renders.
type FeedsHandler struct {
	Store *feed.Store
}

// ServeHTTP handles GET /api/feeds and GET /api/feeds/{source}.
func (h *FeedsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respond.ErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if source := r.PathValue("source"); source != "" {
		snap, ok := h.Store.Get(source)
		if !ok {
			respond.ErrorMessage(w, http.StatusNotFound, "no snapshot for source")
			return
		}
		respond.JSON(w, http.StatusOK, snap)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{"feeds": h.Store.All()})
}
