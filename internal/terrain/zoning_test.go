package terrain

import "testing"

func TestBuildableAreaDefaults(t *testing.T) {
	z := NewZoningCalculator(1000.0, map[string]any{})

	got, ok := z.BuildableArea()
	if !ok || got != 1000.0 {
		t.Errorf("coefficient default: got %f (ok=%v), want 1000.0", got, ok)
	}

	got, ok = z.FootprintArea()
	if !ok || got != 500.0 {
		t.Errorf("occupation rate default: got %f (ok=%v), want 500.0", got, ok)
	}
}

func TestBuildableAreaFromParameters(t *testing.T) {
	z := NewZoningCalculator(1000.0, map[string]any{"coeficiente": "2.5"})
	got, ok := z.BuildableArea()
	if !ok || got != 2500.0 {
		t.Errorf("got %f (ok=%v), want 2500.0", got, ok)
	}

	// Abbreviation is only consulted when the canonical name is absent.
	z = NewZoningCalculator(1000.0, map[string]any{"ca": "3"})
	got, ok = z.BuildableArea()
	if !ok || got != 3000.0 {
		t.Errorf("abbreviation: got %f (ok=%v), want 3000.0", got, ok)
	}

	z = NewZoningCalculator(1000.0, map[string]any{"coeficiente": "2", "ca": "9"})
	got, _ = z.BuildableArea()
	if got != 2000.0 {
		t.Errorf("canonical name must win: got %f", got)
	}
}

func TestListValuedParameterTakesFirst(t *testing.T) {
	z := NewZoningCalculator(1000.0, map[string]any{"taxa_ocupacao": []string{"0.7", "0.6"}})
	got, ok := z.FootprintArea()
	if !ok || got != 700.0 {
		t.Errorf("got %f (ok=%v), want 700.0", got, ok)
	}
}

func TestUnparseableParameterIsUnavailable(t *testing.T) {
	z := NewZoningCalculator(1000.0, map[string]any{"coeficiente": "ver anexo II"})
	if _, ok := z.BuildableArea(); ok {
		t.Error("unparseable coefficient must be unavailable, not an error or default")
	}

	// The other parameter still works independently.
	if got, ok := z.FootprintArea(); !ok || got != 500.0 {
		t.Errorf("footprint: got %f (ok=%v)", got, ok)
	}
}

func TestNumericParameterTypes(t *testing.T) {
	z := NewZoningCalculator(200.0, map[string]any{"coeficiente": 1.5})
	if got, ok := z.BuildableArea(); !ok || got != 300.0 {
		t.Errorf("float64 value: got %f (ok=%v)", got, ok)
	}

	z = NewZoningCalculator(200.0, map[string]any{"to": []any{"0.25"}})
	if got, ok := z.FootprintArea(); !ok || got != 50.0 {
		t.Errorf("list of any: got %f (ok=%v)", got, ok)
	}
}
