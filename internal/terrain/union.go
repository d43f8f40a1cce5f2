package terrain

import (
	"fmt"

	"github.com/engelsjk/polygol"
	"github.com/paulmach/orb"
)

// unionAll merges polygonal geometries into one shape. Inputs and output are
// in whatever CRS the caller is working in; the union itself is CRS-agnostic.
func unionAll(geoms []orb.Geometry) (orb.Geometry, error) {
	gs := make([]polygol.Geom, 0, len(geoms))
	for _, g := range geoms {
		pg, err := toPolygol(g)
		if err != nil {
			return nil, err
		}
		gs = append(gs, pg)
	}
	u, err := polygol.Union(gs[0], gs[1:]...)
	if err != nil {
		return nil, fmt.Errorf("union: %w", err)
	}
	return fromPolygol(u), nil
}

func toPolygol(g orb.Geometry) (polygol.Geom, error) {
	switch t := g.(type) {
	case orb.Polygon:
		return polygol.Geom{polygonCoords(t)}, nil
	case orb.MultiPolygon:
		out := make(polygol.Geom, len(t))
		for i, p := range t {
			out[i] = polygonCoords(p)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot union geometry type %s", g.GeoJSONType())
	}
}

func polygonCoords(p orb.Polygon) [][][]float64 {
	rings := make([][][]float64, len(p))
	for i, r := range p {
		pts := make([][]float64, len(r))
		for j, pt := range r {
			pts[j] = []float64{pt.X(), pt.Y()}
		}
		rings[i] = pts
	}
	return rings
}

func fromPolygol(g polygol.Geom) orb.Geometry {
	mp := make(orb.MultiPolygon, 0, len(g))
	for _, poly := range g {
		p := make(orb.Polygon, 0, len(poly))
		for _, ring := range poly {
			r := make(orb.Ring, 0, len(ring))
			for _, pt := range ring {
				r = append(r, orb.Point{pt[0], pt[1]})
			}
			p = append(p, r)
		}
		mp = append(mp, p)
	}
	if len(mp) == 1 {
		return mp[0]
	}
	return mp
}
