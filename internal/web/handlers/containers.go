package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
)

// ContainerHandler serves state and county listing endpoints
type ContainerHandler struct {
	Store  store.Store
	Logger *slog.Logger
}

// ListStates returns all states
func (h *ContainerHandler) ListStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.Store.FindContainers(r.Context(), store.ContainerFilter{Kind: store.KindState})
	if err != nil {
		h.Logger.Error("state listing failed", "error", err)
		respondError(w, http.StatusInternalServerError, "state listing failed")
		return
	}
	if states == nil {
		states = []store.GeoContainer{}
	}

	respondJSON(w, http.StatusOK, states)
}

// ListCounties returns the counties of one state
func (h *ContainerHandler) ListCounties(w http.ResponseWriter, r *http.Request) {
	stateID := mux.Vars(r)["stateId"]

	state, err := h.Store.FindContainerByID(r.Context(), stateID)
	if err != nil {
		h.Logger.Error("state lookup failed", "id", stateID, "error", err)
		respondError(w, http.StatusInternalServerError, "state lookup failed")
		return
	}
	if state == nil || state.Kind != store.KindState {
		respondError(w, http.StatusNotFound, "state not found")
		return
	}

	counties, err := h.Store.FindContainers(r.Context(), store.ContainerFilter{
		Kind:     store.KindCounty,
		ParentID: stateID,
	})
	if err != nil {
		h.Logger.Error("county listing failed", "state_id", stateID, "error", err)
		respondError(w, http.StatusInternalServerError, "county listing failed")
		return
	}
	if counties == nil {
		counties = []store.GeoContainer{}
	}

	respondJSON(w, http.StatusOK, counties)
}
