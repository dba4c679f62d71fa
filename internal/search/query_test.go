package search

import (
	"context"
	"testing"

	"github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestComposeScope(t *testing.T) {
	qc := NewQueryComposer(NewHierarchyResolver(newHierarchyStore()))
	ctx := context.Background()

	spec, err := qc.Compose(ctx, &Request{CountyID: "orange"})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if !spec.Scoped || len(spec.ParentIDs) != 1 || spec.ParentIDs[0] != "orange" {
		t.Errorf("Compose() scope = %+v, want single county orange", spec.ParentIDs)
	}

	spec, err = qc.Compose(ctx, &Request{})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if spec.Scoped {
		t.Errorf("Compose() with no location should be unscoped, got %+v", spec.ParentIDs)
	}
}

func TestComposePredicates(t *testing.T) {
	qc := NewQueryComposer(NewHierarchyResolver(newHierarchyStore()))

	req := &Request{
		Status:       store.StatusActive,
		MinValue:     floatPtr(300000),
		MaxValue:     floatPtr(500000),
		MinBedrooms:  intPtr(3),
		TaxLienStatus: "delinquent",
		ZipCode:      "92660",
		City:         "newport",
	}

	spec, err := qc.Compose(context.Background(), req)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if spec.Status != store.StatusActive {
		t.Errorf("Compose() Status = %q, want %q", spec.Status, store.StatusActive)
	}
	if spec.MinValue == nil || *spec.MinValue != 300000 {
		t.Errorf("Compose() MinValue = %v, want 300000", spec.MinValue)
	}
	if spec.MaxValue == nil || *spec.MaxValue != 500000 {
		t.Errorf("Compose() MaxValue = %v, want 500000", spec.MaxValue)
	}
	if spec.MinBedrooms == nil || *spec.MinBedrooms != 3 {
		t.Errorf("Compose() MinBedrooms = %v, want 3", spec.MinBedrooms)
	}
	if spec.TaxLienStatus != "delinquent" {
		t.Errorf("Compose() TaxLienStatus = %q, want delinquent", spec.TaxLienStatus)
	}
	if spec.ZipCode != "92660" {
		t.Errorf("Compose() ZipCode = %q, want 92660", spec.ZipCode)
	}
	if spec.City != "newport" {
		t.Errorf("Compose() City = %q, want newport", spec.City)
	}
}

func TestLimitClamping(t *testing.T) {
	qc := NewQueryComposer(NewHierarchyResolver(store.NewMemoryStore()))

	tests := []struct {
		requested int
		want      int
	}{
		{0, DefaultLimit},
		{-5, 1},
		{1, 1},
		{50, 50},
		{100, 100},
		{101, 100},
		{100000, 100},
	}

	for _, tt := range tests {
		got := qc.Limit(&Request{Limit: tt.requested})
		if got != tt.want {
			t.Errorf("Limit(%d) = %d, want %d", tt.requested, got, tt.want)
		}
		if got < 1 || got > MaxLimit {
			t.Errorf("Limit(%d) = %d, outside [1, %d]", tt.requested, got, MaxLimit)
		}
	}

	if got := qc.Page(&Request{Page: 0}); got != 1 {
		t.Errorf("Page(0) = %d, want 1", got)
	}
	if got := qc.Page(&Request{Page: -3}); got != 1 {
		t.Errorf("Page(-3) = %d, want 1", got)
	}
	if got := qc.Page(&Request{Page: 4}); got != 4 {
		t.Errorf("Page(4) = %d, want 4", got)
	}
}

func TestSortSpec(t *testing.T) {
	qc := NewQueryComposer(NewHierarchyResolver(store.NewMemoryStore()))

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		wantField string
		wantDesc  bool
	}{
		{
			name:      "default is updatedAt descending",
			wantField: store.SortUpdatedAt,
			wantDesc:  true,
		},
		{
			name:      "price ascending",
			sortBy:    "price",
			sortOrder: "asc",
			wantField: store.SortPrice,
			wantDesc:  false,
		},
		{
			name:      "price descending",
			sortBy:    "price",
			sortOrder: "desc",
			wantField: store.SortPrice,
			wantDesc:  true,
		},
		{
			name:      "unknown field falls back to default",
			sortBy:    "shoe_size",
			sortOrder: "asc",
			wantField: store.SortUpdatedAt,
			wantDesc:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := qc.SortSpec(&Request{SortBy: tt.sortBy, SortOrder: tt.sortOrder})
			if got.Field != tt.wantField {
				t.Errorf("SortSpec() field = %q, want %q", got.Field, tt.wantField)
			}
			if got.Descending != tt.wantDesc {
				t.Errorf("SortSpec() descending = %v, want %v", got.Descending, tt.wantDesc)
			}
		})
	}
}
