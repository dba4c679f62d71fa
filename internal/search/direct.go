package search

import (
	"context"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
)

// DirectMatcher performs exact lookups keyed on canonical property
// identifiers, with a text-containment quick-lookup as the last resort.
type DirectMatcher struct {
	store store.Store
}

// NewDirectMatcher creates a direct matcher backed by the given store.
func NewDirectMatcher(s store.Store) *DirectMatcher {
	return &DirectMatcher{store: s}
}

// MatchDirect attempts the exact-match paths in priority order, returning as
// soon as one yields at least one row:
//
//  1. parcelId exact equality within scope,
//  2. taxAccountNumber exact equality within scope,
//  3. searchQuery case-insensitive substring over owner name, street, city
//     and property name, capped at QuickLookupLimit rows.
//
// An empty result is not an error; it is the trigger condition for the fuzzy
// fallback when a canonical identifier was supplied.
func (dm *DirectMatcher) MatchDirect(ctx context.Context, scope store.FilterSpec, req *Request) ([]store.Property, error) {
	switch {
	case req.ParcelID != "":
		spec := scope
		spec.ParcelID = req.ParcelID
		return dm.find(ctx, spec, QuickLookupLimit)

	case req.TaxAccountNumber != "":
		spec := scope
		spec.TaxAccountNumber = req.TaxAccountNumber
		return dm.find(ctx, spec, QuickLookupLimit)

	case req.SearchQuery != "":
		spec := scope
		spec.TextQuery = req.SearchQuery
		return dm.find(ctx, spec, QuickLookupLimit)
	}

	return nil, nil
}

func (dm *DirectMatcher) find(ctx context.Context, spec store.FilterSpec, limit int) ([]store.Property, error) {
	props, err := dm.store.FindProperties(ctx, spec, store.DefaultSort(), 0, limit)
	if err != nil {
		return nil, &MatchingError{Op: "direct match", Err: err}
	}
	return props, nil
}
