package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store used by tests and the demo seed. Reads
// take a shared lock so the store is safe for concurrent searches; writes
// only happen at load time.
type MemoryStore struct {
	mu         sync.RWMutex
	containers []GeoContainer
	properties []Property
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AddContainer inserts a state or county.
func (ms *MemoryStore) AddContainer(c GeoContainer) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.containers = append(ms.containers, c)
}

// AddProperty inserts a property. Insertion order is the natural candidate
// order used when no explicit sort applies.
func (ms *MemoryStore) AddProperty(p Property) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.properties = append(ms.properties, p)
}

// FindContainers returns containers matching the filter.
func (ms *MemoryStore) FindContainers(_ context.Context, filter ContainerFilter) ([]GeoContainer, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var out []GeoContainer
	for _, c := range ms.containers {
		if filter.Kind != "" && c.Kind != filter.Kind {
			continue
		}
		if filter.ParentID != "" && (c.ParentID == nil || *c.ParentID != filter.ParentID) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// FindContainerByID returns the container with the given ID, or nil.
func (ms *MemoryStore) FindContainerByID(_ context.Context, id string) (*GeoContainer, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	for i := range ms.containers {
		if ms.containers[i].ID == id {
			c := ms.containers[i]
			return &c, nil
		}
	}
	return nil, nil
}

// FindProperties returns the filtered, sorted page of properties.
func (ms *MemoryStore) FindProperties(_ context.Context, filter FilterSpec, s Sort, skip, limit int) ([]Property, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var matched []Property
	for _, p := range ms.properties {
		if matchesFilter(&p, &filter) {
			matched = append(matched, p)
		}
	}

	sortProperties(matched, s)

	if skip >= len(matched) {
		return nil, nil
	}
	matched = matched[skip:]
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// CountProperties returns the number of properties matching the filter.
func (ms *MemoryStore) CountProperties(_ context.Context, filter FilterSpec) (int, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	count := 0
	for _, p := range ms.properties {
		if matchesFilter(&p, &filter) {
			count++
		}
	}
	return count, nil
}

// FindPropertyByID returns the property with the given ID, or nil.
func (ms *MemoryStore) FindPropertyByID(_ context.Context, id string) (*Property, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	for i := range ms.properties {
		if ms.properties[i].ID == id {
			p := ms.properties[i]
			return &p, nil
		}
	}
	return nil, nil
}

// matchesFilter evaluates every present predicate group against a property.
func matchesFilter(p *Property, f *FilterSpec) bool {
	if f.Scoped {
		found := false
		for _, id := range f.ParentIDs {
			if p.ParentID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.MinValue != nil && (p.TaxStatus.AssessedValue == nil || *p.TaxStatus.AssessedValue < *f.MinValue) {
		return false
	}
	if f.MaxValue != nil && (p.TaxStatus.AssessedValue == nil || *p.TaxStatus.AssessedValue > *f.MaxValue) {
		return false
	}
	if f.PropertyType != "" && p.Features.PropertyType != f.PropertyType {
		return false
	}
	if f.Condition != "" && p.Features.Condition != f.Condition {
		return false
	}
	if !intInRange(p.Features.Bedrooms, f.MinBedrooms, f.MaxBedrooms) {
		return false
	}
	if !floatInRange(p.Features.Bathrooms, f.MinBathrooms, f.MaxBathrooms) {
		return false
	}
	if !intInRange(p.Features.YearBuilt, f.MinYearBuilt, f.MaxYearBuilt) {
		return false
	}
	if !floatInRange(p.Features.LotSize, f.MinLotSize, f.MaxLotSize) {
		return false
	}
	if !floatInRange(p.Features.SquareFeet, f.MinSqFt, f.MaxSqFt) {
		return false
	}
	if f.TaxLienStatus != "" && p.TaxStatus.TaxLienStatus != f.TaxLienStatus {
		return false
	}
	if f.ZipCode != "" && p.Location.ZipCode != f.ZipCode {
		return false
	}
	if f.City != "" && !containsFold(p.Location.City, f.City) {
		return false
	}

	if f.ParcelID != "" && p.Identifiers.ParcelID != f.ParcelID {
		return false
	}
	if f.TaxAccountNumber != "" && p.Identifiers.TaxAccountNumber != f.TaxAccountNumber {
		return false
	}
	if f.TextQuery != "" {
		q := f.TextQuery
		if !containsFold(p.Owner.Name, q) &&
			!containsFold(p.Location.Street, q) &&
			!containsFold(p.Location.City, q) &&
			!containsFold(p.Name, q) {
			return false
		}
	}

	if f.RequireParcelID && p.Identifiers.ParcelID == "" {
		return false
	}
	if f.RequireTaxAccountNumber && p.Identifiers.TaxAccountNumber == "" {
		return false
	}

	return true
}

func intInRange(v, min, max *int) bool {
	if min == nil && max == nil {
		return true
	}
	if v == nil {
		return false
	}
	if min != nil && *v < *min {
		return false
	}
	if max != nil && *v > *max {
		return false
	}
	return true
}

func floatInRange(v, min, max *float64) bool {
	if min == nil && max == nil {
		return true
	}
	if v == nil {
		return false
	}
	if min != nil && *v < *min {
		return false
	}
	if max != nil && *v > *max {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// sortProperties orders a result set in place. Stable so that equal keys
// keep insertion (natural candidate) order.
func sortProperties(props []Property, s Sort) {
	key := func(p *Property) float64 {
		switch s.Field {
		case SortPrice:
			return p.Price
		case SortYearBuilt:
			if p.Features.YearBuilt == nil {
				return 0
			}
			return float64(*p.Features.YearBuilt)
		case SortSquareFeet:
			if p.Features.SquareFeet == nil {
				return 0
			}
			return *p.Features.SquareFeet
		default: // SortUpdatedAt
			return float64(p.UpdatedAt.UnixNano())
		}
	}

	sort.SliceStable(props, func(i, j int) bool {
		if s.Field == SortName {
			if s.Descending {
				return props[i].Name > props[j].Name
			}
			return props[i].Name < props[j].Name
		}
		if s.Descending {
			return key(&props[i]) > key(&props[j])
		}
		return key(&props[i]) < key(&props[j])
	})
}
