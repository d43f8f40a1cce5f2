package terrain

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// ZoningCalculator derives buildable potential from a terrain area and the
// zoning parameters extracted for it. Unlike the column extraction, missing
// parameters fall back to permissive defaults on purpose: prospectors want a
// first estimate even when the dataset carries no coefficients.
type ZoningCalculator struct {
	area   float64
	params map[string]any
}

func NewZoningCalculator(areaM2 float64, params map[string]any) *ZoningCalculator {
	return &ZoningCalculator{area: areaM2, params: params}
}

// BuildableArea returns the maximum buildable floor area in m², using the
// utilization coefficient ("coeficiente", falling back to "ca", default 1.0).
// ok is false when the stored parameter cannot be read as a number.
func (z *ZoningCalculator) BuildableArea() (float64, bool) {
	return z.scaled("coeficiente", "ca", 1.0)
}

// FootprintArea returns the maximum ground-projection area in m², using the
// occupation rate ("taxa_ocupacao", falling back to "to", default 0.5).
func (z *ZoningCalculator) FootprintArea() (float64, bool) {
	return z.scaled("taxa_ocupacao", "to", 0.5)
}

func (z *ZoningCalculator) scaled(name, abbrev string, def float64) (float64, bool) {
	factor := def
	if v, ok := z.lookup(name, abbrev); ok {
		f, err := toFloat(v)
		if err != nil {
			slog.Warn("unusable zoning parameter", "param", name, "value", v, "err", err)
			return 0, false
		}
		factor = f
	}
	return round2(z.area * factor), true
}

func (z *ZoningCalculator) lookup(name, abbrev string) (any, bool) {
	if v, ok := z.params[name]; ok {
		return first(v), true
	}
	if v, ok := z.params[abbrev]; ok {
		return first(v), true
	}
	return nil, false
}

// first unwraps list-valued parameters (parcels that disagree) to the first
// entry, mirroring how the extraction stores them.
func first(v any) any {
	switch t := v.(type) {
	case []string:
		if len(t) == 0 {
			return nil
		}
		return t[0]
	case []any:
		if len(t) == 0 {
			return nil
		}
		return t[0]
	case []float64:
		if len(t) == 0 {
			return nil
		}
		return t[0]
	}
	return v
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	case nil:
		return 0, fmt.Errorf("empty parameter")
	default:
		return 0, fmt.Errorf("unsupported parameter type %T", v)
	}
}
