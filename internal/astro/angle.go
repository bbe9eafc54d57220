// Package astro provides calendar, angle and zodiac math for chart calculation.
package astro

import "math"

// NormalizeDegrees maps any angle onto [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -1e-15 + 360 rounds to 360 in float64
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// AngularDistance returns the shortest arc between two absolute degrees.
// The result is in [0, 180] and symmetric in its arguments.
func AngularDistance(deg1, deg2 float64) float64 {
	diff := math.Abs(NormalizeDegrees(deg1) - NormalizeDegrees(deg2))
	return math.Min(diff, 360-diff)
}

// SignedDelta returns the signed motion from one longitude to another,
// in (-180, 180]. Negative means the body moved backwards along the zodiac.
func SignedDelta(from, to float64) float64 {
	d := NormalizeDegrees(to - from)
	if d > 180 {
		d -= 360
	}
	return d
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
