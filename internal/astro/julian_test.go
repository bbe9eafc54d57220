package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
		tol      float64
	}{
		{
			name:     "J2000 epoch",
			time:     time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			expected: 2451545.0,
			tol:      0.0001,
		},
		{
			name:     "Unix epoch",
			time:     time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2440587.5,
			tol:      0.0001,
		},
		{
			name:     "Known date 2024-01-01 00:00 UTC",
			time:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2460310.5,
			tol:      0.0001,
		},
		{
			name:     "Minutes count as fractions of a day",
			time:     time.Date(2024, 1, 1, 6, 30, 0, 0, time.UTC),
			expected: 2460310.5 + 6.0/24 + 30.0/1440,
			tol:      0.000001,
		},
		{
			name:     "March is not shifted",
			time:     time.Date(1987, 4, 10, 0, 0, 0, 0, time.UTC),
			expected: 2446895.5,
			tol:      0.0001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDay(tt.time)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("JulianDay() = %v, want %v (±%v)", got, tt.expected, tt.tol)
			}
		})
	}
}

func TestJulianDay_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	local := time.Date(2000, 1, 1, 17, 0, 0, 0, loc)
	if got := JulianDay(local); math.Abs(got-J2000) > 1e-6 {
		t.Errorf("JulianDay(local) = %v, want %v", got, J2000)
	}
}

func TestJulianDay_NonsenseDateIsDeterministic(t *testing.T) {
	// time.Date normalizes Feb 30 to Mar 1; the result is still a valid day number.
	a := JulianDay(time.Date(2023, 2, 30, 0, 0, 0, 0, time.UTC))
	b := JulianDay(time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC))
	if a != b {
		t.Errorf("JulianDay(Feb 30) = %v, want %v", a, b)
	}
}
