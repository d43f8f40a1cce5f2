// Package geostore holds the parcel dataset in memory: one geometry pair per
// parcel (projected metres for measurement, lon/lat for display) plus the raw
// attribute columns. The store is built once at startup and never mutated, so
// it is safe to share across requests without locking.
package geostore

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
)

// column is one attribute column in row order. valid tracks nulls the same
// way the parquet validity bitmap does.
type column struct {
	values []string
	valid  []bool
}

// Store is the read-only parcel dataset.
type Store struct {
	names      []string // attribute columns in schema order, geometry excluded
	cols       map[string]*column
	geographic []orb.Geometry // EPSG:4326, for display
	projected  []orb.Geometry // EPSG:31984, for measurement
}

// Parcel is a single row of the store. Attrs holds only non-null attribute
// values. Projected may be nil for parcels built outside the loader; the
// analyzer reprojects from Geographic in that case.
type Parcel struct {
	Index      int
	Geographic orb.Geometry
	Projected  orb.Geometry
	Attrs      map[string]string
}

// ColumnNotFoundError reports that none of the candidate names exist in the
// dataset schema. Available lists the schema so callers can surface it.
type ColumnNotFoundError struct {
	Candidates []string
	Available  []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("none of the columns %v exist in the dataset (available: %v)", e.Candidates, e.Available)
}

// NoMatchError reports a filter that selected zero parcels.
type NoMatchError struct {
	Column string
	Value  string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no parcels match %s = %q", e.Column, e.Value)
}

// IndexError reports an out-of-range parcel index.
type IndexError struct {
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("parcel index %d out of range [0, %d)", e.Index, e.Count)
}

// Count returns the number of parcels.
func (s *Store) Count() int {
	return len(s.geographic)
}

// Columns returns the attribute column names in schema order.
func (s *Store) Columns() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// TotalBounds returns the axis-aligned lon/lat bounding box of every parcel.
func (s *Store) TotalBounds() orb.Bound {
	var b orb.Bound
	for i, g := range s.geographic {
		if i == 0 {
			b = g.Bound()
			continue
		}
		b = b.Union(g.Bound())
	}
	return b
}

// Resolve returns the first candidate present in the schema.
func (s *Store) Resolve(candidates []string) (string, bool) {
	for _, name := range candidates {
		if _, ok := s.cols[name]; ok {
			return name, true
		}
	}
	return "", false
}

// ListDistinct resolves a column from the candidates and returns its distinct
// non-null values sorted ascending.
func (s *Store) ListDistinct(candidates []string) ([]string, error) {
	name, ok := s.Resolve(candidates)
	if !ok {
		return nil, &ColumnNotFoundError{Candidates: candidates, Available: s.Columns()}
	}
	col := s.cols[name]
	seen := make(map[string]struct{})
	var out []string
	for i, v := range col.values {
		if !col.valid[i] {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// FilterByColumnValue resolves a column from the candidates and returns the
// parcels whose value equals the given one, in row order.
func (s *Store) FilterByColumnValue(candidates []string, value string) ([]Parcel, error) {
	name, ok := s.Resolve(candidates)
	if !ok {
		return nil, &ColumnNotFoundError{Candidates: candidates, Available: s.Columns()}
	}
	col := s.cols[name]
	var out []Parcel
	for i := range s.geographic {
		if col.valid[i] && col.values[i] == value {
			out = append(out, s.parcel(i))
		}
	}
	if len(out) == 0 {
		return nil, &NoMatchError{Column: name, Value: value}
	}
	return out, nil
}

// Get returns the parcel at the given row index.
func (s *Store) Get(index int) (Parcel, error) {
	if index < 0 || index >= s.Count() {
		return Parcel{}, &IndexError{Index: index, Count: s.Count()}
	}
	return s.parcel(index), nil
}

func (s *Store) parcel(i int) Parcel {
	attrs := make(map[string]string, len(s.names))
	for _, name := range s.names {
		col := s.cols[name]
		if col.valid[i] {
			attrs[name] = col.values[i]
		}
	}
	return Parcel{
		Index:      i,
		Geographic: s.geographic[i],
		Projected:  s.projected[i],
		Attrs:      attrs,
	}
}
