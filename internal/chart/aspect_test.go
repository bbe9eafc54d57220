package chart

import (
	"math"
	"testing"
)

func TestCalculateAspects_Classification(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		wantType AspectType
		wantOrb  float64
		wantNone bool
	}{
		{name: "exact square", a: 0, b: 90, wantType: Square, wantOrb: 0},
		{name: "conjunction boundary inclusive", a: 0, b: 8, wantType: Conjunction, wantOrb: 8},
		{name: "just outside conjunction", a: 0, b: 8.01, wantNone: true},
		{name: "opposition across wrap", a: 350, b: 175, wantType: Opposition, wantOrb: 5},
		{name: "trine", a: 10, b: 127, wantType: Trine, wantOrb: 3},
		{name: "sextile", a: 100, b: 45, wantType: Sextile, wantOrb: 5},
		{name: "sextile orb is six", a: 0, b: 66.5, wantNone: true},
		{name: "square low side", a: 0, b: 82, wantType: Square, wantOrb: 8},
		{name: "no aspect at 45", a: 0, b: 45, wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := []Position{NewPosition("A", tt.a), NewPosition("B", tt.b)}
			got := ChartAspects(chart)

			if tt.wantNone {
				if len(got) != 0 {
					t.Fatalf("expected no aspects, got %+v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected exactly one aspect, got %d", len(got))
			}
			if got[0].Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got[0].Type, tt.wantType)
			}
			if math.Abs(got[0].Orb-tt.wantOrb) > 1e-9 {
				t.Errorf("Orb = %v, want %v", got[0].Orb, tt.wantOrb)
			}
			if got[0].IsSynastry {
				t.Error("chart-internal aspect flagged as synastry")
			}
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// Widen two windows so they overlap and check the earlier entry wins,
	// even when the later one is closer to exact.
	saved := AspectDefs
	defer func() { AspectDefs = saved }()

	AspectDefs = []AspectDef{
		{Type: Trine, Angle: 120, MaxOrb: 20},
		{Type: Square, Angle: 90, MaxOrb: 20},
	}
	def, ok := Classify(103)
	if !ok || def.Type != Trine {
		t.Errorf("Classify(103) = %v, %v; want Trine", def.Type, ok)
	}
}

func TestCalculateAspects_PairCounts(t *testing.T) {
	// Every body 0° apart so every candidate pair classifies.
	chart := []Position{
		NewPosition("Sun", 10), NewPosition("Moon", 10), NewPosition("Mars", 10), NewPosition("Venus", 10),
	}
	other := []Position{NewPosition("Sun", 10), NewPosition("Saturn", 10), NewPosition("Pluto", 10)}

	if got, want := len(ChartAspects(chart)), 4*3/2; got != want {
		t.Errorf("chart-internal pairs = %d, want %d", got, want)
	}
	if got, want := len(CalculateAspects(chart, other, true)), 4*3; got != want {
		t.Errorf("synastry pairs = %d, want %d", got, want)
	}
}

func TestCalculateAspects_SkipsSameNameOutsideSynastry(t *testing.T) {
	a := []Position{NewPosition("Sun", 0), NewPosition("Moon", 40)}
	b := []Position{NewPosition("Moon", 1), NewPosition("Sun", 2)}

	for _, asp := range CalculateAspects(a, b, false) {
		if asp.Planet1.Name == asp.Planet2.Name {
			t.Errorf("same-name pair emitted: %+v", asp)
		}
	}

	var sawSelf bool
	for _, asp := range CalculateAspects(a, b, true) {
		if asp.Planet1.Name == "Sun" && asp.Planet2.Name == "Sun" {
			sawSelf = true
		}
	}
	if !sawSelf {
		t.Error("synastry should compare a body with its own name in the other chart")
	}
}

func TestCalculateAspects_SortedByOrb(t *testing.T) {
	chart := []Position{
		NewPosition("Sun", 0),
		NewPosition("Moon", 95),    // square orb 5
		NewPosition("Mars", 121),   // trine to Sun orb 1
		NewPosition("Venus", 183),  // opposition to Sun orb 3
		NewPosition("Saturn", 241), // trine to Mars orb 0
	}
	got := ChartAspects(chart)
	if len(got) == 0 {
		t.Fatal("expected aspects")
	}
	for i := 1; i < len(got); i++ {
		if got[i].Orb < got[i-1].Orb {
			t.Fatalf("aspects not sorted at %d: %v after %v", i, got[i].Orb, got[i-1].Orb)
		}
	}
	if got[0].Orb != 0 {
		t.Errorf("head orb = %v, want 0", got[0].Orb)
	}
}

func TestCalculateAspects_Empty(t *testing.T) {
	if got := CalculateAspects(nil, nil, true); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if got := ChartAspects([]Position{NewPosition("Sun", 1)}); len(got) != 0 {
		t.Errorf("single body should have no aspects, got %v", got)
	}
}

func TestCalculateAspects_DoesNotMutateInputs(t *testing.T) {
	chart := []Position{NewPosition("Sun", 10), NewPosition("Moon", 190)}
	before := append([]Position(nil), chart...)
	_ = ChartAspects(chart)
	for i := range chart {
		if chart[i] != before[i] {
			t.Errorf("input mutated at %d: %v != %v", i, chart[i], before[i])
		}
	}
}

func TestCalculateAspects_TransitToNatal(t *testing.T) {
	natal := []Position{NewPosition(Sun, 0), NewPosition(Moon, 90)}
	transit := []Position{NewPosition(Mars, 0)}

	got := CalculateAspects(transit, natal, true)

	var found bool
	for _, a := range got {
		if a.Planet1.Name == Mars && a.Planet2.Name == Sun {
			found = true
			if a.Type != Conjunction || a.Orb != 0 || !a.IsSynastry {
				t.Errorf("Mars-Sun aspect = %+v, want exact synastry conjunction", a)
			}
		}
	}
	if !found {
		t.Fatal("transiting Mars conjunct natal Sun not found")
	}
}

func TestAspectKey(t *testing.T) {
	a := Aspect{Planet1: NewPosition("Mars", 0), Planet2: NewPosition("Sun", 0), Type: Conjunction}
	if got := a.Key(); got != "Mars|Conjunction|Sun" {
		t.Errorf("Key() = %q", got)
	}
}
