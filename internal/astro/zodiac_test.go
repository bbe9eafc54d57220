package astro

import (
	"math"
	"testing"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		abs      float64
		wantSign Sign
		wantDeg  float64
	}{
		{0, Aries, 0},
		{15.5, Aries, 15.5},
		{30, Taurus, 0},
		{29.999, Aries, 29.999},
		{95, Cancer, 5},
		{359.9, Pisces, 29.9},
		{360, Aries, 0},
		{-10, Pisces, 20},
		{725, Aries, 5},
	}

	for _, tt := range tests {
		sign, deg := Decompose(tt.abs)
		if sign != tt.wantSign {
			t.Errorf("Decompose(%v) sign = %v, want %v", tt.abs, sign, tt.wantSign)
		}
		if math.Abs(deg-tt.wantDeg) > 1e-9 {
			t.Errorf("Decompose(%v) degree = %v, want %v", tt.abs, deg, tt.wantDeg)
		}
	}
}

func TestDecompose_RoundTrip(t *testing.T) {
	for x := -800.0; x <= 800; x += 3.37 {
		sign, deg := Decompose(x)
		if sign < Aries || sign > Pisces {
			t.Fatalf("Decompose(%v) sign index %d out of range", x, sign)
		}
		if deg < 0 || deg >= SignWidth {
			t.Errorf("Decompose(%v) degree %v out of [0,30)", x, deg)
		}
		got := sign.StartDegree() + deg
		if math.Abs(got-NormalizeDegrees(x)) > 1e-9 {
			t.Errorf("round trip of %v = %v, want %v", x, got, NormalizeDegrees(x))
		}
	}
}

func TestSignString(t *testing.T) {
	if Aries.String() != "Aries" || Pisces.String() != "Pisces" {
		t.Errorf("unexpected sign names: %v, %v", Aries, Pisces)
	}
	if Sign(12).String() != "Unknown" {
		t.Errorf("Sign(12).String() = %q, want Unknown", Sign(12).String())
	}
	if len(Signs) != 12 {
		t.Errorf("len(Signs) = %d, want 12", len(Signs))
	}
}

func TestParseSign(t *testing.T) {
	tests := []struct {
		in     string
		want   Sign
		wantOK bool
	}{
		{"scorpio", Scorpio, true},
		{" Leo ", Leo, true},
		{"Ophiuchus", Aries, false},
	}

	for _, tt := range tests {
		got, ok := ParseSign(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseSign(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
