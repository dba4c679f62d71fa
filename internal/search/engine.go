package search

import (
	"context"
	"fmt"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
)

// Engine orchestrates the full request-to-result-set resolution: scope
// composition, the exact-match path, the fuzzy fallback and the general
// paginated path. Engines are stateless; every input is request-scoped, so a
// single Engine serves concurrent requests without locking.
type Engine struct {
	store     store.Store
	composer  *QueryComposer
	direct    *DirectMatcher
	fuzzy     *FuzzyMatcher
	validator *HierarchyValidator
}

// NewEngine wires an engine over the given store.
func NewEngine(s store.Store) *Engine {
	return &Engine{
		store:     s,
		composer:  NewQueryComposer(NewHierarchyResolver(s)),
		direct:    NewDirectMatcher(s),
		fuzzy:     NewFuzzyMatcher(s),
		validator: NewHierarchyValidator(s),
	}
}

// Validator exposes the strict hierarchy check for path-parameterized
// endpoints.
func (e *Engine) Validator() *HierarchyValidator {
	return e.validator
}

// Search resolves a request into a result page:
//
//  1. compose the filter specification (hierarchy scope + attribute
//     predicates),
//  2. if identifier-style fields are present, try the direct matcher,
//  3. if the direct matcher found nothing and a canonical identifier was
//     supplied, run the fuzzy fallback over the same scoped candidate set
//     (a searchQuery miss does not trigger fuzzy),
//  4. otherwise run the general paginated query.
//
// An empty result is a valid, non-error outcome at every stage.
func (e *Engine) Search(ctx context.Context, req *Request) (*Result, error) {
	threshold, err := e.threshold(req)
	if err != nil {
		return nil, err
	}

	spec, err := e.composer.Compose(ctx, req)
	if err != nil {
		return nil, err
	}

	page := e.composer.Page(req)
	limit := e.composer.Limit(req)

	if req.HasLookup() {
		props, err := e.direct.MatchDirect(ctx, spec, req)
		if err != nil {
			return nil, err
		}
		if len(props) > 0 {
			return &Result{
				Properties: props,
				Total:      len(props),
				Page:       page,
				Limit:      limit,
				Method:     MethodDirect,
			}, nil
		}

		if req.HasIdentifier() {
			field, value := FieldParcelID, req.ParcelID
			if value == "" {
				field, value = FieldTaxAccountNumber, req.TaxAccountNumber
			}

			matches, err := e.fuzzy.MatchFuzzy(ctx, spec, field, value, threshold)
			if err != nil {
				return nil, err
			}

			props := make([]store.Property, 0, len(matches))
			for _, m := range matches {
				props = append(props, m.Property)
			}
			return &Result{
				Properties: props,
				Total:      len(props),
				Page:       page,
				Limit:      limit,
				Method:     MethodFuzzy,
			}, nil
		}

		// searchQuery miss: empty direct result, no fuzzy fallback.
		return &Result{
			Properties: []store.Property{},
			Page:       page,
			Limit:      limit,
			Method:     MethodDirect,
		}, nil
	}

	total, err := e.store.CountProperties(ctx, spec)
	if err != nil {
		return nil, &MatchingError{Op: "property count", Err: err}
	}

	props, err := e.store.FindProperties(ctx, spec, e.composer.SortSpec(req), (page-1)*limit, limit)
	if err != nil {
		return nil, &MatchingError{Op: "property query", Err: err}
	}
	if props == nil {
		props = []store.Property{}
	}

	return &Result{
		Properties: props,
		Total:      total,
		Page:       page,
		Limit:      limit,
		Method:     MethodFiltered,
	}, nil
}

// threshold resolves the fuzzy similarity threshold, defaulting when unset
// and rejecting out-of-range values.
func (e *Engine) threshold(req *Request) (float64, error) {
	if req.Threshold == 0 {
		return DefaultThreshold, nil
	}
	if req.Threshold < 0 || req.Threshold > 1 {
		return 0, &InvalidInputError{
			Field:  "threshold",
			Reason: fmt.Sprintf("%g is outside [0,1]", req.Threshold),
		}
	}
	return req.Threshold, nil
}
