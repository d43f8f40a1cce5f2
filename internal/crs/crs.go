// Package crs converts parcel geometries between the dataset's projected
// coordinate system and lon/lat for map display.
//
// The source data is EPSG:31984 (SIRGAS 2000 / UTM zone 24S, metres), covering
// Vitória-ES. SIRGAS 2000 and WGS84 agree to well under a metre, so the WGS84
// UTM math is used for both directions.
package crs

import (
	"fmt"

	"github.com/im7mortal/UTM"
	"github.com/paulmach/orb"
)

const (
	// SourceEPSG is the projected CRS the dataset is delivered in.
	SourceEPSG = 31984

	zoneNumber = 24
	northern   = false

	// MetersPerDegree is the approximate metres-per-degree scale used when a
	// geometry cannot be reprojected. It is only valid near the original
	// deployment latitude (~20°S); do not reuse it for other regions.
	MetersPerDegree = 111320.0
)

type pointFunc func(orb.Point) (orb.Point, error)

// ToGeographic reprojects a geometry from UTM zone 24S metres to lon/lat.
func ToGeographic(g orb.Geometry) (orb.Geometry, error) {
	return apply(g, func(p orb.Point) (orb.Point, error) {
		lat, lon, err := UTM.ToLatLon(p.X(), p.Y(), zoneNumber, "", northern)
		if err != nil {
			return orb.Point{}, err
		}
		return orb.Point{lon, lat}, nil
	})
}

// ToProjected reprojects a lon/lat geometry into UTM metres. All parcels sit
// in zone 24, so the zone the library derives from the longitude is accepted
// as-is; coordinates stay metric either way.
func ToProjected(g orb.Geometry) (orb.Geometry, error) {
	return apply(g, func(p orb.Point) (orb.Point, error) {
		easting, northing, _, _, err := UTM.FromLatLon(p.Y(), p.X(), northern)
		if err != nil {
			return orb.Point{}, err
		}
		return orb.Point{easting, northing}, nil
	})
}

func apply(g orb.Geometry, f pointFunc) (orb.Geometry, error) {
	switch t := g.(type) {
	case orb.Point:
		return f(t)
	case orb.Polygon:
		return applyPolygon(t, f)
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(t))
		for i, poly := range t {
			p, err := applyPolygon(poly, f)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	default:
		return nil, fmt.Errorf("crs: unsupported geometry type %s", g.GeoJSONType())
	}
}

func applyPolygon(poly orb.Polygon, f pointFunc) (orb.Polygon, error) {
	out := make(orb.Polygon, len(poly))
	for i, ring := range poly {
		r := make(orb.Ring, len(ring))
		for j, pt := range ring {
			p, err := f(pt)
			if err != nil {
				return nil, err
			}
			r[j] = p
		}
		out[i] = r
	}
	return out, nil
}
