package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
)

// StatsHandler serves the inventory statistics endpoint
type StatsHandler struct {
	Store  store.Store
	Logger *slog.Logger
}

// StatsResponse summarizes the property inventory
type StatsResponse struct {
	TotalProperties int            `json:"total_properties"`
	ByStatus        map[string]int `json:"by_status"`
	States          int            `json:"states"`
	Counties        int            `json:"counties"`
}

// GetStats returns inventory-wide counts
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var stats StatsResponse

	total, err := h.Store.CountProperties(ctx, store.FilterSpec{})
	if err != nil {
		h.Logger.Error("stats query failed", "error", err)
		respondError(w, http.StatusInternalServerError, "stats query failed")
		return
	}
	stats.TotalProperties = total

	stats.ByStatus = make(map[string]int)
	for _, status := range []string{store.StatusActive, store.StatusPending, store.StatusSold} {
		count, err := h.Store.CountProperties(ctx, store.FilterSpec{Status: status})
		if err != nil {
			h.Logger.Error("stats query failed", "status", status, "error", err)
			respondError(w, http.StatusInternalServerError, "stats query failed")
			return
		}
		stats.ByStatus[status] = count
	}

	states, err := h.Store.FindContainers(ctx, store.ContainerFilter{Kind: store.KindState})
	if err != nil {
		h.Logger.Error("stats query failed", "error", err)
		respondError(w, http.StatusInternalServerError, "stats query failed")
		return
	}
	counties, err := h.Store.FindContainers(ctx, store.ContainerFilter{Kind: store.KindCounty})
	if err != nil {
		h.Logger.Error("stats query failed", "error", err)
		respondError(w, http.StatusInternalServerError, "stats query failed")
		return
	}
	stats.States = len(states)
	stats.Counties = len(counties)

	respondJSON(w, http.StatusOK, stats)
}
