package search

import (
	"context"
	"sort"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
)

// Identifier fields eligible for fuzzy matching.
const (
	FieldParcelID         = "parcelId"
	FieldTaxAccountNumber = "taxAccountNumber"
)

// FuzzyMatcher resolves identifiers that fail exact matching due to
// formatting noise in source data. It scans a bounded candidate set within
// the query scope and ranks candidates by normalized edit-distance
// similarity against a threshold.
type FuzzyMatcher struct {
	store store.Store
}

// NewFuzzyMatcher creates a fuzzy matcher backed by the given store.
func NewFuzzyMatcher(s store.Store) *FuzzyMatcher {
	return &FuzzyMatcher{store: s}
}

// Match pairs a property with its similarity score.
type Match struct {
	Property store.Property
	Score    float64
}

// MatchFuzzy scans properties within scope (capped at FuzzyCandidateCap),
// normalizes both the target value and each candidate's identifier field,
// and keeps candidates whose similarity meets the threshold. Results are
// ordered by descending similarity, candidate order breaking ties.
//
// When the scoping county carries a lookup-method hint, candidates without
// the hinted identifier field are excluded before scoring, so no comparisons
// are wasted on empty fields.
func (fm *FuzzyMatcher) MatchFuzzy(ctx context.Context, scope store.FilterSpec, targetField, targetValue string, threshold float64) ([]Match, error) {
	spec := scope
	fm.applyLookupHint(ctx, &spec)

	candidates, err := fm.store.FindProperties(ctx, spec, store.DefaultSort(), 0, FuzzyCandidateCap)
	if err != nil {
		return nil, &MatchingError{Op: "fuzzy candidate fetch", Err: err}
	}

	target := Normalize(targetValue)

	var matches []Match
	for _, cand := range candidates {
		var raw string
		switch targetField {
		case FieldParcelID:
			raw = cand.Identifiers.ParcelID
		case FieldTaxAccountNumber:
			raw = cand.Identifiers.TaxAccountNumber
		}
		if raw == "" {
			continue
		}

		score := Similarity(target, Normalize(raw))
		if score >= threshold {
			matches = append(matches, Match{Property: cand, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches, nil
}

// applyLookupHint narrows the candidate spec to rows that populate the
// identifier field the scoping county is known to carry. Only a single-county
// scope can carry a hint; hint lookup failures are ignored because the hint
// is an optimization, not a correctness requirement.
func (fm *FuzzyMatcher) applyLookupHint(ctx context.Context, spec *store.FilterSpec) {
	if !spec.Scoped || len(spec.ParentIDs) != 1 {
		return
	}

	county, err := fm.store.FindContainerByID(ctx, spec.ParentIDs[0])
	if err != nil || county == nil {
		return
	}

	switch county.LookupMethod {
	case store.LookupParcelID:
		spec.RequireParcelID = true
	case store.LookupAccountNumber:
		spec.RequireTaxAccountNumber = true
	}
}
