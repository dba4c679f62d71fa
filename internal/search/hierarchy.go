package search

import (
	"context"
	"fmt"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
)

// Scope bounds which properties a query may return, expressed as a set of
// county IDs. All=true means no restriction.
type Scope struct {
	All       bool
	ParentIDs []string
}

// HierarchyResolver expands a state and/or county reference into the
// concrete set of county IDs that scope a property query. It is lenient:
// unknown IDs simply produce a scope that matches nothing, they are not an
// error. Strict existence checking is HierarchyValidator's job.
type HierarchyResolver struct {
	store store.Store
}

// NewHierarchyResolver creates a resolver backed by the given store.
func NewHierarchyResolver(s store.Store) *HierarchyResolver {
	return &HierarchyResolver{store: s}
}

// ResolveScope derives the hierarchy scope for a query. A county reference
// wins over a state reference because it is the more specific scope, even if
// the county does not actually belong to the given state. A state expands to
// the IDs of its counties; a state with zero counties (or an unknown state)
// yields an empty scope that matches zero properties, never "unfiltered".
func (r *HierarchyResolver) ResolveScope(ctx context.Context, stateID, countyID string) (Scope, error) {
	if countyID != "" {
		return Scope{ParentIDs: []string{countyID}}, nil
	}

	if stateID != "" {
		counties, err := r.store.FindContainers(ctx, store.ContainerFilter{
			Kind:     store.KindCounty,
			ParentID: stateID,
		})
		if err != nil {
			return Scope{}, fmt.Errorf("failed to expand state %s: %w", stateID, err)
		}

		ids := make([]string, 0, len(counties))
		for _, c := range counties {
			ids = append(ids, c.ID)
		}
		return Scope{ParentIDs: ids}, nil
	}

	return Scope{All: true}, nil
}

// HierarchyValidator enforces that a property/county/state triple is
// internally consistent: the property's parent is the county and the
// county's parent is the state. Used by path-parameterized endpoints to
// reject mismatched nesting before any further work.
type HierarchyValidator struct {
	store store.Store
}

// NewHierarchyValidator creates a validator backed by the given store.
func NewHierarchyValidator(s store.Store) *HierarchyValidator {
	return &HierarchyValidator{store: s}
}

// Validate checks the consistency of the given triple. With no ancestor
// constraints the check is trivially valid. Returns a *HierarchyError when
// an entity is missing or the nesting is wrong.
func (v *HierarchyValidator) Validate(ctx context.Context, propertyID, countyID, stateID string) error {
	if countyID == "" && stateID == "" {
		return nil
	}

	prop, err := v.store.FindPropertyByID(ctx, propertyID)
	if err != nil {
		return fmt.Errorf("failed to fetch property %s: %w", propertyID, err)
	}
	if prop == nil {
		return &HierarchyError{
			Kind:    HierarchyPropertyNotFound,
			Message: fmt.Sprintf("property %s not found", propertyID),
		}
	}

	if countyID != "" && prop.ParentID != countyID {
		return &HierarchyError{
			Kind:    HierarchyWrongCounty,
			Message: fmt.Sprintf("property %s does not belong to county %s", propertyID, countyID),
		}
	}

	if stateID != "" {
		// With no explicit county constraint, check the state against the
		// property's actual parent county.
		if countyID == "" {
			countyID = prop.ParentID
		}
		county, err := v.store.FindContainerByID(ctx, countyID)
		if err != nil {
			return fmt.Errorf("failed to fetch county %s: %w", countyID, err)
		}
		if county == nil {
			return &HierarchyError{
				Kind:    HierarchyCountyNotFound,
				Message: fmt.Sprintf("county %s not found", countyID),
			}
		}
		if county.ParentID == nil || *county.ParentID != stateID {
			return &HierarchyError{
				Kind:    HierarchyWrongState,
				Message: fmt.Sprintf("county %s does not belong to state %s", countyID, stateID),
			}
		}
	}

	return nil
}
