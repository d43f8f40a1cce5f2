package geostore

import (
	"errors"
	"reflect"
	"testing"

	"github.com/paulmach/orb"
)

func square(x, y, size float64) orb.Polygon {
	return orb.Polygon{{
		{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y},
	}}
}

// testStore builds a 3-parcel store with a capitalized neighborhood column
// and a lowercase name column, the kind of schema mix real datasets have.
func testStore() *Store {
	return &Store{
		names: []string{"BAIRRO", "nome", "ca"},
		cols: map[string]*column{
			"BAIRRO": {
				values: []string{"Centro", "Praia do Canto", "Centro"},
				valid:  []bool{true, true, true},
			},
			"nome": {
				values: []string{"lote 1", "", "lote 3"},
				valid:  []bool{true, false, true},
			},
			"ca": {
				values: []string{"2.5", "", "1.0"},
				valid:  []bool{true, false, true},
			},
		},
		geographic: []orb.Geometry{
			square(-40.30, -20.30, 0.001),
			square(-40.29, -20.29, 0.001),
			square(-40.28, -20.28, 0.001),
		},
		projected: []orb.Geometry{
			square(365000, 7755000, 100),
			square(366000, 7756000, 100),
			square(367000, 7757000, 100),
		},
	}
}

func TestResolveIsOrderSensitive(t *testing.T) {
	s := testStore()

	// Both BAIRRO and nome exist; the candidate order decides.
	name, ok := s.Resolve([]string{"bairro", "BAIRRO", "nome"})
	if !ok {
		t.Fatal("expected a resolved column")
	}
	if name != "BAIRRO" {
		t.Errorf("expected BAIRRO, got %s", name)
	}

	name, ok = s.Resolve([]string{"nome", "BAIRRO"})
	if !ok || name != "nome" {
		t.Errorf("expected nome, got %s (ok=%v)", name, ok)
	}

	if _, ok := s.Resolve([]string{"zona", "zoneamento"}); ok {
		t.Error("expected no match for absent columns")
	}
}

func TestListDistinct(t *testing.T) {
	s := testStore()

	got, err := s.ListDistinct(NeighborhoodColumns)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Centro", "Praia do Canto"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("distinct values: got %v, want %v", got, want)
	}
}

func TestListDistinctColumnNotFound(t *testing.T) {
	s := testStore()

	_, err := s.ListDistinct([]string{"zona", "uso"})
	var cnf *ColumnNotFoundError
	if !errors.As(err, &cnf) {
		t.Fatalf("expected ColumnNotFoundError, got %v", err)
	}
	if len(cnf.Available) != 3 {
		t.Errorf("expected 3 available columns in diagnostics, got %v", cnf.Available)
	}
}

func TestFilterByColumnValue(t *testing.T) {
	s := testStore()

	parcels, err := s.FilterByColumnValue(NeighborhoodColumns, "Centro")
	if err != nil {
		t.Fatal(err)
	}
	if len(parcels) != 2 {
		t.Fatalf("expected 2 parcels, got %d", len(parcels))
	}
	if parcels[0].Index != 0 || parcels[1].Index != 2 {
		t.Errorf("row order broken: %d, %d", parcels[0].Index, parcels[1].Index)
	}
	if parcels[0].Attrs["ca"] != "2.5" {
		t.Errorf("attrs missing: %v", parcels[0].Attrs)
	}
	// Null cells must not appear as attributes.
	if _, ok := parcels[0].Attrs["nome"]; !ok {
		t.Error("expected nome attr on row 0")
	}

	_, err = s.FilterByColumnValue(NeighborhoodColumns, "Jardim Camburi")
	var nm *NoMatchError
	if !errors.As(err, &nm) {
		t.Fatalf("expected NoMatchError, got %v", err)
	}
}

func TestGet(t *testing.T) {
	s := testStore()

	p, err := s.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if p.Index != 1 || p.Attrs["BAIRRO"] != "Praia do Canto" {
		t.Errorf("wrong parcel: %+v", p)
	}
	if _, ok := p.Attrs["nome"]; ok {
		t.Error("null cell leaked into attrs")
	}

	var ie *IndexError
	if _, err := s.Get(-1); !errors.As(err, &ie) {
		t.Errorf("expected IndexError for -1, got %v", err)
	}
	if _, err := s.Get(3); !errors.As(err, &ie) {
		t.Errorf("expected IndexError for 3, got %v", err)
	}
}

func TestTotalBounds(t *testing.T) {
	s := testStore()

	b := s.TotalBounds()
	approx := func(got, want float64) bool { return got > want-1e-9 && got < want+1e-9 }
	if !approx(b.Min.Lon(), -40.30) || !approx(b.Min.Lat(), -20.30) {
		t.Errorf("min corner: %v", b.Min)
	}
	if !approx(b.Max.Lon(), -40.279) || !approx(b.Max.Lat(), -20.279) {
		t.Errorf("max corner: %v", b.Max)
	}
}
