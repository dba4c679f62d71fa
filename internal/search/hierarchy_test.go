package search

import (
	"context"
	"testing"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
)

func strPtr(s string) *string { return &s }

// newHierarchyStore builds a small two-state fixture:
// ca -> {orange, riverside}, tx -> no counties; nv does not exist.
func newHierarchyStore() *store.MemoryStore {
	ms := store.NewMemoryStore()
	ms.AddContainer(store.GeoContainer{ID: "ca", Name: "California", Kind: store.KindState})
	ms.AddContainer(store.GeoContainer{ID: "tx", Name: "Texas", Kind: store.KindState})
	ms.AddContainer(store.GeoContainer{ID: "orange", ParentID: strPtr("ca"), Name: "Orange", Kind: store.KindCounty})
	ms.AddContainer(store.GeoContainer{ID: "riverside", ParentID: strPtr("ca"), Name: "Riverside", Kind: store.KindCounty})
	return ms
}

func TestResolveScope(t *testing.T) {
	resolver := NewHierarchyResolver(newHierarchyStore())
	ctx := context.Background()

	tests := []struct {
		name      string
		stateID   string
		countyID  string
		wantAll   bool
		wantScope []string
	}{
		{
			name:      "county only",
			countyID:  "orange",
			wantScope: []string{"orange"},
		},
		{
			// County is the more specific scope; it wins even when the
			// county does not belong to the given state. Lenient by design;
			// strict checking is the validator's job.
			name:      "county wins over mismatched state",
			stateID:   "tx",
			countyID:  "orange",
			wantScope: []string{"orange"},
		},
		{
			name:      "state expands to county set",
			stateID:   "ca",
			wantScope: []string{"orange", "riverside"},
		},
		{
			name:      "state with zero counties matches nothing",
			stateID:   "tx",
			wantScope: []string{},
		},
		{
			name:      "unknown state matches nothing",
			stateID:   "nv",
			wantScope: []string{},
		},
		{
			name:    "no scope restriction",
			wantAll: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := resolver.ResolveScope(ctx, tt.stateID, tt.countyID)
			if err != nil {
				t.Fatalf("ResolveScope() error = %v", err)
			}

			if scope.All != tt.wantAll {
				t.Errorf("ResolveScope() All = %v, want %v", scope.All, tt.wantAll)
			}
			if tt.wantAll {
				return
			}

			if len(scope.ParentIDs) != len(tt.wantScope) {
				t.Fatalf("ResolveScope() ParentIDs = %v, want %v", scope.ParentIDs, tt.wantScope)
			}
			for i, id := range tt.wantScope {
				if scope.ParentIDs[i] != id {
					t.Errorf("ResolveScope() ParentIDs[%d] = %q, want %q", i, scope.ParentIDs[i], id)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	ms := newHierarchyStore()
	ms.AddProperty(store.Property{ID: "prop-1", ParentID: "orange", Name: "12 Main St"})
	validator := NewHierarchyValidator(ms)
	ctx := context.Background()

	tests := []struct {
		name       string
		propertyID string
		countyID   string
		stateID    string
		wantKind   string // "" means valid
	}{
		{
			name:       "no ancestor constraints is trivially valid",
			propertyID: "missing-prop",
		},
		{
			name:       "consistent triple",
			propertyID: "prop-1",
			countyID:   "orange",
			stateID:    "ca",
		},
		{
			name:       "property and county only",
			propertyID: "prop-1",
			countyID:   "orange",
		},
		{
			name:       "missing property",
			propertyID: "missing-prop",
			countyID:   "orange",
			wantKind:   HierarchyPropertyNotFound,
		},
		{
			name:       "wrong county",
			propertyID: "prop-1",
			countyID:   "riverside",
			wantKind:   HierarchyWrongCounty,
		},
		{
			name:       "county in wrong state",
			propertyID: "prop-1",
			countyID:   "orange",
			stateID:    "tx",
			wantKind:   HierarchyWrongState,
		},
		{
			name:       "state checked against actual parent county",
			propertyID: "prop-1",
			stateID:    "ca",
		},
		{
			name:       "unknown county",
			propertyID: "prop-1",
			countyID:   "nowhere",
			wantKind:   HierarchyWrongCounty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate(ctx, tt.propertyID, tt.countyID, tt.stateID)

			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			he, ok := AsHierarchyError(err)
			if !ok {
				t.Fatalf("Validate() error = %v, want *HierarchyError", err)
			}
			if he.Kind != tt.wantKind {
				t.Errorf("Validate() kind = %q, want %q", he.Kind, tt.wantKind)
			}
		})
	}
}
