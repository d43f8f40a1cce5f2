// Package terrain computes merged-boundary metrics for a parcel selection:
// geometry union, area and perimeter in metres, zoning attribute extraction
// and the derived buildable-area estimate.
package terrain

import (
	"errors"
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"terrenos/internal/crs"
	"terrenos/internal/geostore"
	"terrenos/internal/models"
)

const (
	// ZoningUnavailable is returned under the "status" key when the dataset
	// has no recognized zoning columns at all.
	ZoningUnavailable = "Informações de zoneamento não disponíveis nos dados"

	// NotAvailable marks an empty additional-info section.
	NotAvailable = "Não disponível"
)

// ErrEmptySelection is returned when an analyzer is built with no parcels.
var ErrEmptySelection = errors.New("terrain: empty parcel selection")

// Analyzer computes metrics over one parcel selection. It is request-scoped:
// the unified geometry is memoized per instance and instances are never
// shared across requests.
type Analyzer struct {
	parcels []geostore.Parcel
	unified orb.Geometry // lon/lat union, lazily computed
}

func NewAnalyzer(parcels []geostore.Parcel) *Analyzer {
	return &Analyzer{parcels: parcels}
}

// Unify merges the selection's display (lon/lat) geometries into one shape.
// A single-parcel selection returns its geometry untouched. The result is
// cached; repeated calls return it without recomputation.
func (a *Analyzer) Unify() (orb.Geometry, error) {
	if a.unified != nil {
		return a.unified, nil
	}
	if len(a.parcels) == 0 {
		return nil, ErrEmptySelection
	}
	if len(a.parcels) == 1 {
		a.unified = a.parcels[0].Geographic
		return a.unified, nil
	}
	geoms := make([]orb.Geometry, len(a.parcels))
	for i, p := range a.parcels {
		geoms[i] = p.Geographic
	}
	u, err := unionAll(geoms)
	if err != nil {
		return nil, err
	}
	a.unified = u
	return u, nil
}

// metricGeometry returns the selection as a single geometry in UTM metres,
// preferring the projected geometry retained by the loader and reprojecting
// from lon/lat only when it is absent.
func (a *Analyzer) metricGeometry() (orb.Geometry, error) {
	if len(a.parcels) == 0 {
		return nil, ErrEmptySelection
	}
	geoms := make([]orb.Geometry, len(a.parcels))
	for i, p := range a.parcels {
		g := p.Projected
		if g == nil {
			var err error
			g, err = crs.ToProjected(p.Geographic)
			if err != nil {
				return nil, err
			}
		}
		geoms[i] = g
	}
	if len(geoms) == 1 {
		return geoms[0], nil
	}
	return unionAll(geoms)
}

// AreaM2 returns the unified area in square metres, rounded to 2 decimals.
// If the metric path fails, the area is approximated from the degree-based
// union with the fixed regional scale factor; that result is lower precision
// and the degradation is logged, not surfaced as an error.
func (a *Analyzer) AreaM2() (float64, error) {
	g, err := a.metricGeometry()
	if err == nil {
		return round2(math.Abs(planar.Area(g))), nil
	}
	if errors.Is(err, ErrEmptySelection) {
		return 0, err
	}
	slog.Warn("metric area unavailable, approximating from degrees", "err", err)
	u, uerr := a.Unify()
	if uerr != nil {
		return 0, uerr
	}
	deg := math.Abs(planar.Area(u))
	return round2(deg * crs.MetersPerDegree * crs.MetersPerDegree), nil
}

// PerimeterM returns the unified boundary length in metres, rounded to
// 2 decimals, with the same degraded fallback as AreaM2 (linear scale).
func (a *Analyzer) PerimeterM() (float64, error) {
	g, err := a.metricGeometry()
	if err == nil {
		return round2(planar.Length(g)), nil
	}
	if errors.Is(err, ErrEmptySelection) {
		return 0, err
	}
	slog.Warn("metric perimeter unavailable, approximating from degrees", "err", err)
	u, uerr := a.Unify()
	if uerr != nil {
		return 0, uerr
	}
	return round2(planar.Length(u) * crs.MetersPerDegree), nil
}

// ZoningInfo extracts zoning categories and urbanistic parameters from every
// recognized column present in the selection. A column where all parcels
// agree collapses to the single value; disagreement keeps the list. When no
// recognized column exists the map carries only an explanatory status entry,
// so callers can tell "no zoning data" apart from an empty extraction.
func (a *Analyzer) ZoningInfo() map[string]any {
	info := make(map[string]any)
	for _, col := range geostore.ZoningColumns {
		vals := a.distinctValues(col)
		switch {
		case len(vals) == 1:
			info[col] = vals[0]
		case len(vals) > 1:
			info[col] = vals
		}
	}
	// Parameters keep duplicates: each parcel contributes its own row value.
	for _, col := range geostore.ParamColumns {
		vals := a.columnValues(col)
		switch {
		case len(vals) == 1:
			info[col] = vals[0]
		case len(vals) > 1:
			info[col] = vals
		}
	}
	if len(info) == 0 {
		info["status"] = ZoningUnavailable
	}
	return info
}

// AdditionalInfo collects the bookkeeping fields (registry, address, block,
// lot, owner) present in the selection. Returns nil when none exist.
func (a *Analyzer) AdditionalInfo() map[string][]string {
	var info map[string][]string
	for _, col := range geostore.InfoColumns {
		vals := a.distinctValues(col)
		if len(vals) == 0 {
			continue
		}
		if info == nil {
			info = make(map[string][]string)
		}
		info[col] = vals
	}
	return info
}

// Summary aggregates everything callers need about the selection. It never
// fails: an internal error surfaces in the Erro field next to the parcel
// count, so a partial result is still returned.
func (a *Analyzer) Summary() models.Summary {
	s := models.Summary{TotalLotes: len(a.parcels)}

	area, err := a.AreaM2()
	if err != nil {
		s.Erro = err.Error()
		return s
	}
	perimeter, err := a.PerimeterM()
	if err != nil {
		s.Erro = err.Error()
		return s
	}

	s.AreaTotalM2 = area
	s.AreaTotalHectares = round4(area / 10000)
	s.PerimetroM = perimeter
	s.Zoneamento = a.ZoningInfo()
	if info := a.AdditionalInfo(); info != nil {
		s.InformacoesAdicionais = info
	} else {
		s.InformacoesAdicionais = NotAvailable
	}

	slog.Info("selection analyzed", "parcels", s.TotalLotes, "area_m2", s.AreaTotalM2)
	return s
}

// Centroid returns the lon/lat centroid of the unified geometry.
func (a *Analyzer) Centroid() (orb.Point, error) {
	u, err := a.Unify()
	if err != nil {
		return orb.Point{}, err
	}
	c, _ := planar.CentroidArea(u)
	return c, nil
}

// Bounds returns the lon/lat bounding box of the unified geometry.
func (a *Analyzer) Bounds() (orb.Bound, error) {
	u, err := a.Unify()
	if err != nil {
		return orb.Bound{}, err
	}
	return u.Bound(), nil
}

// distinctValues returns the column's non-null values deduplicated in first
// appearance order.
func (a *Analyzer) distinctValues(col string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range a.parcels {
		v, ok := p.Attrs[col]
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// columnValues returns the column's non-null values in row order, duplicates
// included.
func (a *Analyzer) columnValues(col string) []string {
	var out []string
	for _, p := range a.parcels {
		if v, ok := p.Attrs[col]; ok {
			out = append(out, v)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
