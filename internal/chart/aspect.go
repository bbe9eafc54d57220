package chart

import (
	"math"
	"sort"

	"github.com/litescript/ls-zodiac/internal/astro"
)

// AspectType is one of the five major aspects.
type AspectType string

const (
	Conjunction AspectType = "Conjunction"
	Opposition  AspectType = "Opposition"
	Trine       AspectType = "Trine"
	Square      AspectType = "Square"
	Sextile     AspectType = "Sextile"
)

// AspectDef pairs an aspect with its exact angle and maximum orb.
type AspectDef struct {
	Type   AspectType
	Angle  float64
	MaxOrb float64
}

// AspectDefs is the classification table in priority order. The first
// definition whose window contains a separation wins, even if a later one
// is closer to exact.
var AspectDefs = []AspectDef{
	{Type: Conjunction, Angle: 0, MaxOrb: 8},
	{Type: Opposition, Angle: 180, MaxOrb: 8},
	{Type: Trine, Angle: 120, MaxOrb: 8},
	{Type: Square, Angle: 90, MaxOrb: 8},
	{Type: Sextile, Angle: 60, MaxOrb: 6},
}

// Aspect is a detected relationship between two placements.
type Aspect struct {
	Planet1    Position
	Planet2    Position
	Type       AspectType
	Angle      float64 // raw separation, [0, 180]
	Orb        float64 // |Angle - exact|
	IsSynastry bool
}

// Classify matches a separation against AspectDefs in order.
func Classify(angle float64) (AspectDef, bool) {
	for _, def := range AspectDefs {
		if math.Abs(angle-def.Angle) <= def.MaxOrb {
			return def, true
		}
	}
	return AspectDef{}, false
}

// CalculateAspects finds every classified aspect between chartA and chartB.
//
// With synastry false the pairing is upper-triangular (j > i) and pairs
// sharing a name are skipped, which is what a single chart wants when
// chartB is chartA. With synastry true every (a, b) pair is compared,
// including a body against its own name in the other chart.
//
// The result is ordered by ascending orb; callers treat the head as the
// most significant influence.
func CalculateAspects(chartA, chartB []Position, synastry bool) []Aspect {
	var aspects []Aspect

	for i, p1 := range chartA {
		start := 0
		if !synastry {
			start = i + 1
		}
		for j := start; j < len(chartB); j++ {
			p2 := chartB[j]
			if !synastry && p1.Name == p2.Name {
				continue
			}

			angle := astro.AngularDistance(p1.AbsoluteDegree, p2.AbsoluteDegree)
			def, ok := Classify(angle)
			if !ok {
				continue
			}

			aspects = append(aspects, Aspect{
				Planet1:    p1,
				Planet2:    p2,
				Type:       def.Type,
				Angle:      angle,
				Orb:        math.Abs(angle - def.Angle),
				IsSynastry: synastry,
			})
		}
	}

	sort.SliceStable(aspects, func(i, j int) bool {
		return aspects[i].Orb < aspects[j].Orb
	})
	return aspects
}

// ChartAspects returns the aspects among the bodies of a single chart.
func ChartAspects(positions []Position) []Aspect {
	return CalculateAspects(positions, positions, false)
}

// Key identifies an aspect by its participants and type, ignoring orb.
// Used to track when an aspect forms or separates between snapshots.
func (a Aspect) Key() string {
	return a.Planet1.Name + "|" + string(a.Type) + "|" + a.Planet2.Name
}
