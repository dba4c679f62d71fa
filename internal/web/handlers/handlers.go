package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/search"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// parseIntParam parses an optional integer query parameter. A missing or
// empty parameter is not an error and yields nil.
func parseIntParam(q url.Values, key string) (*int, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &search.InvalidInputError{Field: key, Reason: "not an integer"}
	}
	return &value, nil
}

// parseFloatParam parses an optional float query parameter. A missing or
// empty parameter is not an error and yields nil.
func parseFloatParam(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &search.InvalidInputError{Field: key, Reason: "not a number"}
	}
	return &value, nil
}
