package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/search"
)

// SearchHandler serves the property search endpoint
type SearchHandler struct {
	Engine *search.Engine
	Logger *slog.Logger
}

// Search runs a property search assembled from query parameters.
// Identifier parameters (parcelId, taxAccountNumber, searchQuery) take the
// lookup path; everything else is a filter on the paginated query.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Engine.Search(r.Context(), req)
	if err != nil {
		var invalid *search.InvalidInputError
		if errors.As(err, &invalid) {
			respondError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		h.Logger.Error("search failed", "error", err)
		respondError(w, http.StatusInternalServerError, "search failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// parseSearchRequest translates the query-string parameter bag into a search
// request. Numeric parameters that fail to parse are rejected; unknown
// parameters are ignored.
func parseSearchRequest(q url.Values) (*search.Request, error) {
	req := &search.Request{
		StateID:          q.Get("stateId"),
		CountyID:         q.Get("countyId"),
		Status:           q.Get("status"),
		PropertyType:     q.Get("propertyType"),
		Condition:        q.Get("condition"),
		TaxLienStatus:    q.Get("taxLienStatus"),
		ZipCode:          q.Get("zipCode"),
		City:             q.Get("city"),
		ParcelID:         q.Get("parcelId"),
		TaxAccountNumber: q.Get("taxAccountNumber"),
		SearchQuery:      q.Get("searchQuery"),
		SortBy:           q.Get("sortBy"),
		SortOrder:        q.Get("sortOrder"),
	}

	var err error
	if req.MinValue, err = parseFloatParam(q, "minValue"); err != nil {
		return nil, err
	}
	if req.MaxValue, err = parseFloatParam(q, "maxValue"); err != nil {
		return nil, err
	}
	if req.MinBedrooms, err = parseIntParam(q, "minBedrooms"); err != nil {
		return nil, err
	}
	if req.MaxBedrooms, err = parseIntParam(q, "maxBedrooms"); err != nil {
		return nil, err
	}
	if req.MinBathrooms, err = parseFloatParam(q, "minBathrooms"); err != nil {
		return nil, err
	}
	if req.MaxBathrooms, err = parseFloatParam(q, "maxBathrooms"); err != nil {
		return nil, err
	}
	if req.MinYearBuilt, err = parseIntParam(q, "minYearBuilt"); err != nil {
		return nil, err
	}
	if req.MaxYearBuilt, err = parseIntParam(q, "maxYearBuilt"); err != nil {
		return nil, err
	}
	if req.MinLotSize, err = parseFloatParam(q, "minLotSize"); err != nil {
		return nil, err
	}
	if req.MaxLotSize, err = parseFloatParam(q, "maxLotSize"); err != nil {
		return nil, err
	}
	if req.MinSquareFeet, err = parseFloatParam(q, "minSquareFeet"); err != nil {
		return nil, err
	}
	if req.MaxSquareFeet, err = parseFloatParam(q, "maxSquareFeet"); err != nil {
		return nil, err
	}

	if raw := q.Get("threshold"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &search.InvalidInputError{Field: "threshold", Reason: "not a number"}
		}
		req.Threshold = threshold
	}
	if page, err := parseIntParam(q, "page"); err != nil {
		return nil, err
	} else if page != nil {
		req.Page = *page
	}
	if limit, err := parseIntParam(q, "limit"); err != nil {
		return nil, err
	} else if limit != nil {
		req.Limit = *limit
	}

	return req, nil
}
