package crs

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestRoundTripNearVitoria(t *testing.T) {
	// Easting/northing inside UTM zone 24S, roughly central Vitória-ES.
	p := orb.Point{365000, 7756000}

	geo, err := ToGeographic(p)
	if err != nil {
		t.Fatal(err)
	}
	gp := geo.(orb.Point)

	if gp.Lon() < -41 || gp.Lon() > -39.5 {
		t.Errorf("longitude out of expected range: %f", gp.Lon())
	}
	if gp.Lat() < -21 || gp.Lat() > -19.5 {
		t.Errorf("latitude out of expected range: %f", gp.Lat())
	}

	back, err := ToProjected(geo)
	if err != nil {
		t.Fatal(err)
	}
	bp := back.(orb.Point)

	if math.Abs(bp.X()-p.X()) > 0.5 || math.Abs(bp.Y()-p.Y()) > 0.5 {
		t.Errorf("round trip drifted: got (%f, %f), want (%f, %f)", bp.X(), bp.Y(), p.X(), p.Y())
	}
}

func TestPolygonReprojection(t *testing.T) {
	poly := orb.Polygon{{
		{365000, 7756000}, {365010, 7756000}, {365010, 7756010}, {365000, 7756010}, {365000, 7756000},
	}}

	geo, err := ToGeographic(poly)
	if err != nil {
		t.Fatal(err)
	}
	gp, ok := geo.(orb.Polygon)
	if !ok {
		t.Fatalf("expected polygon, got %T", geo)
	}
	if len(gp[0]) != len(poly[0]) {
		t.Errorf("ring length changed: %d != %d", len(gp[0]), len(poly[0]))
	}
}

func TestToProjectedOutOfRange(t *testing.T) {
	// UTM is undefined below 80°S; the error feeds the analyzer's fallback.
	p := orb.Point{10, -85}
	if _, err := ToProjected(p); err == nil {
		t.Error("expected error for latitude outside UTM range")
	}
}

func TestUnsupportedGeometry(t *testing.T) {
	ls := orb.LineString{{0, 0}, {1, 1}}
	if _, err := ToGeographic(ls); err == nil {
		t.Error("expected error for unsupported geometry type")
	}
}
