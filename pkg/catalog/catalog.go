// Package catalog holds vehicle records in memory, keyed by plate.
package catalog

import (
	"fmt"
	"iter"
	"slices"

	"github.com/ssargent/frota/pkg/vehicle"
)

// Predicate selects records for Search.
type Predicate func(vehicle.Record) bool

// Matcher is implemented by types that select records for SearchMatcher.
type Matcher interface {
	Matches(vehicle.Record) bool
}

// Catalog maps plates to records and remembers insertion order.
// It is not safe for concurrent use; one session owns it.
type Catalog struct {
	records map[string]vehicle.Record
	order   []string
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{
		records: make(map[string]vehicle.Record),
	}
}

// Add inserts a record. It fails with vehicle.ErrDuplicateKey when the plate
// is already present, leaving the catalog unchanged.
func (c *Catalog) Add(r vehicle.Record) error {
	if r.IsZero() {
		return fmt.Errorf("add: %w", &vehicle.AttributeError{Field: vehicle.FieldPlate})
	}

	plate := r.Plate()
	if _, exists := c.records[plate]; exists {
		return fmt.Errorf("%w: %s already in catalog", vehicle.ErrDuplicateKey, plate)
	}

	c.records[plate] = r
	c.order = append(c.order, plate)
	return nil
}

// Get returns the record for plate or vehicle.ErrNotFound.
func (c *Catalog) Get(plate string) (vehicle.Record, error) {
	r, exists := c.records[plate]
	if !exists {
		return vehicle.Record{}, fmt.Errorf("%w: no vehicle with plate %s", vehicle.ErrNotFound, plate)
	}
	return r, nil
}

// Contains reports whether plate is present.
func (c *Catalog) Contains(plate string) bool {
	_, exists := c.records[plate]
	return exists
}

// Remove deletes and returns the record for plate, or vehicle.ErrNotFound.
func (c *Catalog) Remove(plate string) (vehicle.Record, error) {
	r, exists := c.records[plate]
	if !exists {
		return vehicle.Record{}, fmt.Errorf("%w: no vehicle with plate %s", vehicle.ErrNotFound, plate)
	}

	delete(c.records, plate)
	if i := slices.Index(c.order, plate); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return r, nil
}

// Search returns a new catalog with the records for which match holds, in
// the same relative order. The receiver is not modified.
func (c *Catalog) Search(match Predicate) *Catalog {
	found := New()
	for _, plate := range c.order {
		r := c.records[plate]
		if match(r) {
			found.records[plate] = r
			found.order = append(found.order, plate)
		}
	}
	return found
}

// SearchMatcher is Search for Matcher implementations.
func (c *Catalog) SearchMatcher(m Matcher) *Catalog {
	return c.Search(m.Matches)
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// All yields records in insertion order. Each call iterates over the plates
// present when the loop starts; records removed mid-loop are skipped.
func (c *Catalog) All() iter.Seq[vehicle.Record] {
	return func(yield func(vehicle.Record) bool) {
		plates := slices.Clone(c.order)
		for _, plate := range plates {
			r, exists := c.records[plate]
			if !exists {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Plates returns all plates in insertion order.
func (c *Catalog) Plates() []string {
	return slices.Clone(c.order)
}

func (c *Catalog) String() string {
	return fmt.Sprintf("Catalog[#vehicles=%d]", len(c.records))
}
