package store

import "context"

// FilterSpec is the structured filter specification produced by the query
// composer and interpreted by each storage adapter. Every predicate group is
// optional; absent groups do not constrain the query. All present groups are
// combined with AND.
type FilterSpec struct {
	// Hierarchy scope. When Scoped is false the query spans all properties.
	// When Scoped is true, only properties whose ParentID is in ParentIDs
	// match; an empty ParentIDs therefore matches nothing.
	Scoped    bool
	ParentIDs []string

	Status string

	MinValue *float64 // assessed value range
	MaxValue *float64

	PropertyType string
	Condition    string

	MinBedrooms  *int
	MaxBedrooms  *int
	MinBathrooms *float64
	MaxBathrooms *float64
	MinYearBuilt *int
	MaxYearBuilt *int
	MinLotSize   *float64
	MaxLotSize   *float64
	MinSqFt      *float64
	MaxSqFt      *float64

	TaxLienStatus string

	ZipCode string
	City    string // case-insensitive substring

	// Exact identifier predicates, used by the direct matcher.
	ParcelID         string
	TaxAccountNumber string

	// Case-insensitive substring over owner name, street, city and property
	// name, combined with OR. Used by the quick-lookup path.
	TextQuery string

	// Existence predicates, used by the fuzzy matcher to skip candidates
	// whose identifier field is empty.
	RequireParcelID         bool
	RequireTaxAccountNumber bool
}

// Sort field names understood by every adapter.
const (
	SortUpdatedAt  = "updated_at"
	SortPrice      = "price"
	SortYearBuilt  = "year_built"
	SortSquareFeet = "square_feet"
	SortName       = "name"
)

// Sort describes a single-field ordering.
type Sort struct {
	Field      string
	Descending bool
}

// DefaultSort returns the ordering used when a request specifies none.
func DefaultSort() Sort {
	return Sort{Field: SortUpdatedAt, Descending: true}
}

// ContainerFilter constrains container lookups.
type ContainerFilter struct {
	Kind     string // state|county, empty for any
	ParentID string // containers whose ParentID equals this, empty for any
}

// Store is the read-only surface the search engine requires from its storage
// collaborator. Containers and properties are owned and mutated by the
// collector subsystem; this interface never mutates them.
type Store interface {
	FindContainers(ctx context.Context, filter ContainerFilter) ([]GeoContainer, error)
	FindContainerByID(ctx context.Context, id string) (*GeoContainer, error)
	FindProperties(ctx context.Context, filter FilterSpec, sort Sort, skip, limit int) ([]Property, error)
	CountProperties(ctx context.Context, filter FilterSpec) (int, error)
	FindPropertyByID(ctx context.Context, id string) (*Property, error)
}
