package search

import (
	"context"
	"strings"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
)

// QueryComposer translates a flat search request into a structured filter
// specification, layering in the hierarchy scope from HierarchyResolver. It
// never executes the query itself; the specification is consumed by the
// storage adapter and, for fuzzy resolution, as the base candidate filter.
type QueryComposer struct {
	resolver *HierarchyResolver
}

// NewQueryComposer creates a composer using the given resolver for scope
// expansion.
func NewQueryComposer(resolver *HierarchyResolver) *QueryComposer {
	return &QueryComposer{resolver: resolver}
}

// Compose builds the filter specification for a request: a conjunction of
// independent predicate groups, each present only when the corresponding
// request field is set.
func (qc *QueryComposer) Compose(ctx context.Context, req *Request) (store.FilterSpec, error) {
	var spec store.FilterSpec

	scope, err := qc.resolver.ResolveScope(ctx, req.StateID, req.CountyID)
	if err != nil {
		return spec, err
	}
	if !scope.All {
		spec.Scoped = true
		spec.ParentIDs = scope.ParentIDs
	}

	spec.Status = req.Status
	spec.MinValue = req.MinValue
	spec.MaxValue = req.MaxValue
	spec.PropertyType = req.PropertyType
	spec.Condition = req.Condition
	spec.MinBedrooms = req.MinBedrooms
	spec.MaxBedrooms = req.MaxBedrooms
	spec.MinBathrooms = req.MinBathrooms
	spec.MaxBathrooms = req.MaxBathrooms
	spec.MinYearBuilt = req.MinYearBuilt
	spec.MaxYearBuilt = req.MaxYearBuilt
	spec.MinLotSize = req.MinLotSize
	spec.MaxLotSize = req.MaxLotSize
	spec.MinSqFt = req.MinSquareFeet
	spec.MaxSqFt = req.MaxSquareFeet
	spec.TaxLienStatus = req.TaxLienStatus
	spec.ZipCode = req.ZipCode
	spec.City = req.City

	return spec, nil
}

// SortSpec maps the request's sortBy/sortOrder to a store ordering. Unknown
// sort fields fall back to the default (updatedAt descending) rather than
// erroring, so a stale client cannot break search.
func (qc *QueryComposer) SortSpec(req *Request) store.Sort {
	field := ""
	switch req.SortBy {
	case "updatedAt", "":
		field = store.SortUpdatedAt
	case "price":
		field = store.SortPrice
	case "yearBuilt":
		field = store.SortYearBuilt
	case "squareFeet":
		field = store.SortSquareFeet
	case "name":
		field = store.SortName
	default:
		return store.DefaultSort()
	}

	if req.SortBy == "" && req.SortOrder == "" {
		return store.DefaultSort()
	}

	return store.Sort{
		Field:      field,
		Descending: !strings.EqualFold(req.SortOrder, "asc"),
	}
}

// Page returns the effective page number, at least 1.
func (qc *QueryComposer) Page(req *Request) int {
	if req.Page < 1 {
		return 1
	}
	return req.Page
}

// Limit returns the effective page size, clamped into [1, MaxLimit] to bound
// worst-case result materialization regardless of client input. Zero (unset)
// becomes DefaultLimit.
func (qc *QueryComposer) Limit(req *Request) int {
	switch {
	case req.Limit == 0:
		return DefaultLimit
	case req.Limit < 1:
		return 1
	case req.Limit > MaxLimit:
		return MaxLimit
	default:
		return req.Limit
	}
}
