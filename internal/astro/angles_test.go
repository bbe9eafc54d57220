package astro

import (
	"math"
	"testing"
	"time"
)

func TestGreenwichMeanSiderealTime(t *testing.T) {
	t2000 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	gmst := greenwichMeanSiderealTime(t2000)

	if math.Abs(gmst-280.46) > 0.1 {
		t.Errorf("GMST at J2000 = %v, want ~280.46", gmst)
	}
	if gmst < 0 || gmst >= 360 {
		t.Errorf("GMST out of range: %v", gmst)
	}
}

func TestLocalSiderealTime(t *testing.T) {
	testTime := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	gmst := greenwichMeanSiderealTime(testTime)
	if lst0 := localSiderealTime(testTime, 0); math.Abs(lst0-gmst) > 0.001 {
		t.Errorf("LST at lon=0 should equal GMST: got %v, want %v", lst0, gmst)
	}

	lst90 := localSiderealTime(testTime, 90)
	if want := math.Mod(gmst+90, 360); math.Abs(lst90-want) > 0.001 {
		t.Errorf("LST at lon=90 = %v, want %v", lst90, want)
	}

	for lon := -180.0; lon <= 180; lon += 30 {
		lst := localSiderealTime(testTime, lon)
		if lst < 0 || lst >= 360 {
			t.Errorf("LST at lon=%v out of range: %v", lon, lst)
		}
	}
}

func TestAscendantAndMidheaven_Equator(t *testing.T) {
	const eps = 23.44
	tests := []struct {
		ramc    float64
		wantAsc float64
		wantMC  float64
	}{
		{0, 90, 0},    // Aries culminating, Cancer rising
		{90, 180, 90}, // Cancer culminating, Libra rising
		{180, 270, 180},
		{270, 0, 270},
	}

	for _, tt := range tests {
		asc := ascendant(tt.ramc, 0, eps)
		mc := midheaven(tt.ramc, eps)
		if AngularDistance(asc, tt.wantAsc) > 1e-6 {
			t.Errorf("ascendant(ramc=%v) = %v, want %v", tt.ramc, asc, tt.wantAsc)
		}
		if AngularDistance(mc, tt.wantMC) > 1e-6 {
			t.Errorf("midheaven(ramc=%v) = %v, want %v", tt.ramc, mc, tt.wantMC)
		}
	}
}

func TestChartAngles_AscendantLeadsMidheaven(t *testing.T) {
	obs := Observer{LatDeg: 51.48, LonDeg: 0, Name: "Greenwich"}
	for h := 0; h < 24; h += 3 {
		at := time.Date(2024, 3, 1, h, 0, 0, 0, time.UTC)
		asc, mc := ChartAngles(at, obs)
		if asc < 0 || asc >= 360 || mc < 0 || mc >= 360 {
			t.Fatalf("angles out of range at %v: asc=%v mc=%v", at, asc, mc)
		}
		// The Ascendant always lies in the half of the zodiac following the MC.
		if d := SignedDelta(mc, asc); d <= 0 {
			t.Errorf("at %v asc=%v should follow mc=%v (delta %v)", at, asc, mc, d)
		}
	}
}
