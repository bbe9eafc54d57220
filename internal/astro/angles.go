package astro

import (
	"math"
	"time"
)

// Observer is a point on Earth a chart is cast for.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// ChartAngles returns the Ascendant and Midheaven ecliptic longitudes in
// degrees for an observer at the given instant.
func ChartAngles(t time.Time, obs Observer) (asc, mc float64) {
	ramc := localSiderealTime(t, obs.LonDeg)
	eps := obliquity(t)
	return ascendant(ramc, obs.LatDeg, eps), midheaven(ramc, eps)
}

// ascendant computes the rising ecliptic degree from the local sidereal
// angle, latitude and obliquity (all degrees).
func ascendant(ramc, latDeg, epsDeg float64) float64 {
	r := degToRad(ramc)
	e := degToRad(epsDeg)
	lat := degToRad(latDeg)
	y := math.Cos(r)
	x := -(math.Sin(r)*math.Cos(e) + math.Tan(lat)*math.Sin(e))
	return NormalizeDegrees(radToDeg(math.Atan2(y, x)))
}

// midheaven computes the culminating ecliptic degree.
func midheaven(ramc, epsDeg float64) float64 {
	r := degToRad(ramc)
	e := degToRad(epsDeg)
	return NormalizeDegrees(radToDeg(math.Atan2(math.Sin(r), math.Cos(r)*math.Cos(e))))
}

// localSiderealTime calculates the Local Sidereal Time in degrees
// for a given UTC time and observer longitude.
func localSiderealTime(t time.Time, lonDeg float64) float64 {
	return NormalizeDegrees(greenwichMeanSiderealTime(t) + lonDeg)
}

// greenwichMeanSiderealTime calculates GMST in degrees (IAU 1982).
func greenwichMeanSiderealTime(t time.Time) float64 {
	jd := JulianDay(t)
	T := julianCenturies(jd)

	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return NormalizeDegrees(gmst)
}
