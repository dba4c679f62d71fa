package store

import "time"

// Container kinds in the geographic hierarchy. Exactly two non-property
// levels exist: states at the top, counties beneath them.
const (
	KindState  = "state"
	KindCounty = "county"
)

// Property status values as produced by the collector subsystem.
const (
	StatusActive  = "active"
	StatusPending = "pending"
	StatusSold    = "sold"
)

// Lookup-method hints stored on counties, indicating which identifier field
// the county's source records reliably populate.
const (
	LookupParcelID      = "parcel_id"
	LookupAccountNumber = "account_number"
)

// GeoContainer represents a state or county in the geographic hierarchy.
// A state has no parent; a county's ParentID references its state.
type GeoContainer struct {
	ID           string  `json:"id"`
	ParentID     *string `json:"parent_id,omitempty"`
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	LookupMethod string  `json:"lookup_method,omitempty"` // counties only
}

// Features holds the optional physical attributes of a property. All fields
// are pointers because upstream sources populate them inconsistently.
type Features struct {
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"`
	YearBuilt    *int     `json:"year_built,omitempty"`
	LotSize      *float64 `json:"lot_size,omitempty"`
	SquareFeet   *float64 `json:"square_feet,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	Condition    string   `json:"condition,omitempty"`
}

// TaxStatus holds assessment and lien information for a property.
type TaxStatus struct {
	AssessedValue *float64 `json:"assessed_value,omitempty"`
	TaxLienStatus string   `json:"tax_lien_status,omitempty"`
}

// Location holds the street address of a property.
type Location struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
}

// Owner holds ownership information for a property.
type Owner struct {
	Name string `json:"name,omitempty"`
}

// Identifiers holds the canonical identifier fields eligible for direct and
// fuzzy search. Both are free text from heterogeneous upstream sources and
// are inconsistently formatted (punctuation, spacing, case).
type Identifiers struct {
	ParcelID         string `json:"parcel_id,omitempty"`
	TaxAccountNumber string `json:"tax_account_number,omitempty"`
}

// Property is a leaf entity of the hierarchy. ParentID references a county.
// The search engine is read-only over properties; the collector subsystem
// owns all mutation.
type Property struct {
	ID          string      `json:"id"`
	ParentID    string      `json:"parent_id"`
	Name        string      `json:"name"`
	Status      string      `json:"status"`
	Price       float64     `json:"price"`
	Features    Features    `json:"features"`
	TaxStatus   TaxStatus   `json:"tax_status"`
	Location    Location    `json:"location"`
	Owner       Owner       `json:"owner"`
	Identifiers Identifiers `json:"identifiers"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
