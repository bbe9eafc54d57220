package numerology

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateLifePath(t *testing.T) {
	tests := []struct {
		name          string
		birth         time.Time
		wantSum       int
		wantCore      int
		wantMaster    bool
		wantArchetype string
	}{
		{"1990-01-01", date(1990, 1, 1), 3, 3, false, "The Radiant Creator"},
		{"1990-01-09", date(1990, 1, 9), 11, 11, true, "The Illumined Messenger"},
		{"1985-11-22", date(1985, 11, 22), 5 + 11 + 22, 11, true, "The Illumined Messenger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLifePath(tt.birth)
			if got.Sum != tt.wantSum || got.Core != tt.wantCore || got.IsMaster != tt.wantMaster {
				t.Errorf("CalculateLifePath() = %+v, want sum=%d core=%d master=%v",
					got, tt.wantSum, tt.wantCore, tt.wantMaster)
			}
			if got.Archetype != tt.wantArchetype {
				t.Errorf("Archetype = %q, want %q", got.Archetype, tt.wantArchetype)
			}
			if got.Source != tt.name {
				t.Errorf("Source = %q, want %q", got.Source, tt.name)
			}
		})
	}
}

func TestPersonalCycles(t *testing.T) {
	birth := date(1990, 1, 1)
	target := date(2024, 5, 15)

	py := CalculatePersonalYear(birth, target)
	if py != 1 {
		t.Errorf("CalculatePersonalYear() = %d, want 1", py)
	}
	if pm := CalculatePersonalMonth(py, target); pm != 6 {
		t.Errorf("CalculatePersonalMonth() = %d, want 6", pm)
	}
	if pd := CalculatePersonalDay(birth, target); pd != 3 {
		t.Errorf("CalculatePersonalDay() = %d, want 3", pd)
	}

	c := CalculateCycles(birth, target)
	if c != (Cycles{Year: 1, Month: 6, Day: 3}) {
		t.Errorf("CalculateCycles() = %+v", c)
	}
}

func TestCalculatePersonalYear_MasterCanSurface(t *testing.T) {
	// day 9 + month 9 + year 2020 (4) = 22
	if got := CalculatePersonalYear(date(1970, 9, 9), date(2020, 1, 1)); got != 22 {
		t.Errorf("CalculatePersonalYear() = %d, want 22", got)
	}
}
