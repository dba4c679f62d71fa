package search

import (
	"errors"
	"fmt"
)

// Hierarchy error kinds. PropertyNotFound and CountyNotFound surface as 404;
// WrongCounty and WrongState surface as 400.
const (
	HierarchyPropertyNotFound = "property_not_found"
	HierarchyCountyNotFound   = "county_not_found"
	HierarchyWrongCounty      = "wrong_county"
	HierarchyWrongState       = "wrong_state"
)

// HierarchyError reports an inconsistent property/county/state triple or a
// missing entity during hierarchy validation. Recoverable: surfaced to the
// caller with a descriptive message, never a 500.
type HierarchyError struct {
	Kind    string
	Message string
}

func (e *HierarchyError) Error() string {
	return e.Message
}

// NotFound reports whether the error describes a missing entity rather than
// a mismatched nesting.
func (e *HierarchyError) NotFound() bool {
	return e.Kind == HierarchyPropertyNotFound || e.Kind == HierarchyCountyNotFound
}

// InvalidInputError reports a malformed search parameter (non-numeric range
// bound, out-of-range threshold). Surfaced as 400.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MatchingError wraps an unexpected failure while fetching or scoring
// candidates. Surfaced as 500 with no internal detail leaked; the wrapped
// cause is only logged.
type MatchingError struct {
	Op  string
	Err error
}

func (e *MatchingError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *MatchingError) Unwrap() error {
	return e.Err
}

// AsHierarchyError extracts a *HierarchyError from an error chain.
func AsHierarchyError(err error) (*HierarchyError, bool) {
	var he *HierarchyError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
