package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/search"
	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
)

// PropertyHandler serves single-property endpoints
type PropertyHandler struct {
	Store     store.Store
	Validator *search.HierarchyValidator
	Logger    *slog.Logger
}

// GetProperty returns a property by ID
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	prop, err := h.Store.FindPropertyByID(r.Context(), id)
	if err != nil {
		h.Logger.Error("property lookup failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "property lookup failed")
		return
	}
	if prop == nil {
		respondError(w, http.StatusNotFound, "property not found")
		return
	}

	respondJSON(w, http.StatusOK, prop)
}

// GetScopedProperty returns a property addressed by its full
// state/county/property path, verifying that the property actually belongs
// to the named county and the county to the named state. A missing entity is
// 404; a real entity under the wrong parent is 400.
func (h *PropertyHandler) GetScopedProperty(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stateID := vars["stateId"]
	countyID := vars["countyId"]
	propertyID := vars["propertyId"]

	if err := h.Validator.Validate(r.Context(), propertyID, countyID, stateID); err != nil {
		if he, ok := search.AsHierarchyError(err); ok {
			if he.NotFound() {
				respondError(w, http.StatusNotFound, he.Error())
			} else {
				respondError(w, http.StatusBadRequest, he.Error())
			}
			return
		}
		h.Logger.Error("hierarchy validation failed", "property_id", propertyID, "error", err)
		respondError(w, http.StatusInternalServerError, "hierarchy validation failed")
		return
	}

	prop, err := h.Store.FindPropertyByID(r.Context(), propertyID)
	if err != nil {
		h.Logger.Error("property lookup failed", "id", propertyID, "error", err)
		respondError(w, http.StatusInternalServerError, "property lookup failed")
		return
	}
	if prop == nil {
		respondError(w, http.StatusNotFound, "property not found")
		return
	}

	respondJSON(w, http.StatusOK, prop)
}
