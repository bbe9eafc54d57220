// Package chart models body placements and the angular relationships
// between them. Everything here is pure and safe for concurrent use.
package chart

import (
	"fmt"

	"github.com/litescript/ls-zodiac/internal/astro"
)

// Common body names. Any string is a valid body name; these are the ones
// the built-in providers emit.
const (
	Sun       = "Sun"
	Moon      = "Moon"
	Mercury   = "Mercury"
	Venus     = "Venus"
	Mars      = "Mars"
	Jupiter   = "Jupiter"
	Saturn    = "Saturn"
	Uranus    = "Uranus"
	Neptune   = "Neptune"
	Pluto     = "Pluto"
	NorthNode = "North Node"
	Ascendant = "Ascendant"
	Midheaven = "Midheaven"
)

// Position is one body's placement in a chart. AbsoluteDegree is canonical;
// the sign and in-sign degree are always derived from it.
type Position struct {
	Name           string
	AbsoluteDegree float64 // [0, 360)
	Retrograde     bool
	House          int // 0 when not assigned
}

// NewPosition builds a Position with its absolute degree normalized.
func NewPosition(name string, absoluteDeg float64) Position {
	return Position{
		Name:           name,
		AbsoluteDegree: astro.NormalizeDegrees(absoluteDeg),
	}
}

// Sign returns the zodiac sign the body occupies.
func (p Position) Sign() astro.Sign {
	s, _ := astro.Decompose(p.AbsoluteDegree)
	return s
}

// Degree returns the body's degree within its sign, in [0, 30).
func (p Position) Degree() float64 {
	_, d := astro.Decompose(p.AbsoluteDegree)
	return d
}

// String renders e.g. "Sun 12.34° Leo" with an "R" suffix when retrograde.
func (p Position) String() string {
	s := fmt.Sprintf("%s %.2f° %s", p.Name, p.Degree(), p.Sign())
	if p.Retrograde {
		s += " R"
	}
	return s
}

// Find returns the first position with the given name.
func Find(positions []Position, name string) (Position, bool) {
	for _, p := range positions {
		if p.Name == name {
			return p, true
		}
	}
	return Position{}, false
}
