package search

import "github.com/jpperkins30-ai/real-estate-platform-sub010/internal/store"

// Pagination and threshold bounds.
const (
	DefaultLimit     = 20
	MaxLimit         = 100
	DefaultThreshold = 0.7

	// QuickLookupLimit caps the searchQuery text path; it is a quick-lookup
	// aid, not the primary paginated search.
	QuickLookupLimit = 10

	// FuzzyCandidateCap bounds the candidate set scanned by the fuzzy
	// matcher. This is the resource ceiling of the whole engine: per-request
	// CPU is at most FuzzyCandidateCap Levenshtein computations.
	FuzzyCandidateCap = 1000
)

// Resolution methods reported on results.
const (
	MethodDirect   = "direct"
	MethodFuzzy    = "fuzzy"
	MethodFiltered = "filtered"
)

// Request aggregates every filter dimension of a property search. It is
// constructed per call (typically from query-string parameters) and
// discarded after the response is sent.
type Request struct {
	// Hierarchy scope.
	StateID  string
	CountyID string

	// Attribute filters.
	Status        string
	MinValue      *float64
	MaxValue      *float64
	PropertyType  string
	Condition     string
	MinBedrooms   *int
	MaxBedrooms   *int
	MinBathrooms  *float64
	MaxBathrooms  *float64
	MinYearBuilt  *int
	MaxYearBuilt  *int
	MinLotSize    *float64
	MaxLotSize    *float64
	MinSquareFeet *float64
	MaxSquareFeet *float64
	TaxLienStatus string
	ZipCode       string
	City          string

	// Identifier-style lookup fields.
	ParcelID         string
	TaxAccountNumber string
	SearchQuery      string

	// Similarity threshold for the fuzzy fallback, in [0,1]. Zero means
	// "use DefaultThreshold".
	Threshold float64

	// Pagination and sort.
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// HasIdentifier reports whether a canonical identifier field was supplied.
// Only these fields trigger the fuzzy fallback; a searchQuery miss does not.
func (r *Request) HasIdentifier() bool {
	return r.ParcelID != "" || r.TaxAccountNumber != ""
}

// HasLookup reports whether any identifier-style field was supplied,
// including the free-form searchQuery.
func (r *Request) HasLookup() bool {
	return r.HasIdentifier() || r.SearchQuery != ""
}

// Result is the ordered page of properties produced by a search, tagged with
// the resolution method that produced the rows.
type Result struct {
	Properties []store.Property `json:"properties"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Method     string           `json:"searchMethod,omitempty"`
}
