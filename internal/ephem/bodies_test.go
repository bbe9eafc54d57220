package ephem

import (
	"errors"
	"testing"
)

func TestLookupBody(t *testing.T) {
	tests := []struct {
		name     string
		expected TargetID
	}{
		{"Sun", NAIFSun},
		{"sol", NAIFSun}, // alias
		{"MOON", NAIFMoon},
		{"Luna", NAIFMoon}, // alias
		{" Mars ", NAIFMars},
		{"Pluto", NAIFPluto},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := LookupBody(tc.name)
			if !ok {
				t.Fatalf("LookupBody(%q) not found", tc.name)
			}
			if got.NAIFID != tc.expected {
				t.Errorf("LookupBody(%q) = %d, want %d", tc.name, got.NAIFID, tc.expected)
			}
		})
	}
}

func TestLookupBody_Unknown(t *testing.T) {
	if _, ok := LookupBody("North Node"); ok {
		t.Error("North Node has no Horizons target and should not be found")
	}
}

func TestResolveBodies(t *testing.T) {
	got, err := ResolveBodies([]string{"Mars", "moon"})
	if err != nil {
		t.Fatalf("ResolveBodies returned error: %v", err)
	}
	if len(got) != 2 || got[0].NAIFID != NAIFMars || got[1].NAIFID != NAIFMoon {
		t.Errorf("ResolveBodies = %+v", got)
	}

	if _, err := ResolveBodies([]string{"Sun", "North Node"}); !errors.Is(err, ErrUnknownBody) {
		t.Errorf("error = %v, want ErrUnknownBody", err)
	}
}

func TestBodies_UniqueIDs(t *testing.T) {
	seen := make(map[TargetID]string)
	for _, b := range Bodies {
		if prev, ok := seen[b.NAIFID]; ok {
			t.Errorf("NAIF ID %d used by both %s and %s", b.NAIFID, prev, b.Name)
		}
		seen[b.NAIFID] = b.Name
	}
	if len(BodyNames(Bodies)) != len(Bodies) {
		t.Error("BodyNames length mismatch")
	}
}
