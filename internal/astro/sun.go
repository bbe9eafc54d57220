package astro

import (
	"math"
	"time"
)

// SunLongitude returns the Sun's apparent geocentric ecliptic longitude in
// degrees for the given instant. Low-precision solar theory from the
// Astronomical Almanac; good to about 0.01°.
func SunLongitude(t time.Time) float64 {
	T := julianCenturies(JulianDay(t))

	// Mean longitude
	L0 := NormalizeDegrees(280.46646 + 36000.76983*T + 0.0003032*T*T)

	// Mean anomaly
	M := NormalizeDegrees(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mrad := degToRad(M)

	// Equation of center
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(Mrad)
	C += (0.019993 - 0.000101*T) * math.Sin(2*Mrad)
	C += 0.000289 * math.Sin(3*Mrad)

	// Aberration and nutation in longitude
	omega := 125.04 - 1934.136*T
	return NormalizeDegrees(L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(omega)))
}

// obliquity returns the true obliquity of the ecliptic in degrees.
func obliquity(t time.Time) float64 {
	T := julianCenturies(JulianDay(t))
	eps0 := 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
	omega := 125.04 - 1934.136*T
	return eps0 + 0.00256*math.Cos(degToRad(omega))
}
