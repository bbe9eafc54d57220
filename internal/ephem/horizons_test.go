package ephem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/chart"
)

// fakeHorizons serves two ecliptic samples per body from a table keyed by COMMAND.
func fakeHorizons(t *testing.T, samples map[string][2]float64, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		cmd := strings.Trim(r.URL.Query().Get("COMMAND"), "'")
		if q := r.URL.Query().Get("QUANTITIES"); q != "'31'" {
			t.Errorf("QUANTITIES = %q, want '31'", q)
		}
		s, ok := samples[cmd]
		resp := horizonsResponse{}
		if !ok {
			resp.Error = "No matches found."
		} else {
			resp.Result = fmt.Sprintf("header\n$$SOE\n 2024-Jan-01 00:00 *m  %.6f  0.100000\n 2024-Jan-01 01:00 *m  %.6f  0.100000\n$$EOE\nfooter\n", s[0], s[1])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestHorizonsProvider_Positions(t *testing.T) {
	srv := fakeHorizons(t, map[string][2]float64{
		"199": {62.25, 62.10}, // Mercury moving backwards
		"499": {359.95, 0.02}, // Mars crossing 0° Aries direct
	}, nil)
	defer srv.Close()

	p := NewHorizonsProvider(
		WithBaseURL(srv.URL),
		WithBodies([]BodyInfo{BodiesByName["mercury"], BodiesByName["mars"]}),
	)

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := p.Positions(context.Background(), at, astro.Observer{LatDeg: 40, LonDeg: -74})
	if err != nil {
		t.Fatalf("Positions failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(positions) = %d, want 2", len(got))
	}

	merc := got[0]
	if merc.Name != chart.Mercury || merc.AbsoluteDegree != 62.25 || !merc.Retrograde {
		t.Errorf("Mercury = %+v, want 62.25 retrograde", merc)
	}
	if merc.Sign() != astro.Gemini {
		t.Errorf("Mercury sign = %v, want Gemini", merc.Sign())
	}

	mars := got[1]
	if mars.Name != chart.Mars || mars.Retrograde {
		t.Errorf("Mars = %+v, want direct", mars)
	}
	if mars.Sign() != astro.Pisces {
		t.Errorf("Mars sign = %v, want Pisces", mars.Sign())
	}
}

func TestHorizonsProvider_Cache(t *testing.T) {
	var hits int32
	srv := fakeHorizons(t, map[string][2]float64{"10": {280.0, 280.04}}, &hits)
	defer srv.Close()

	p := NewHorizonsProvider(
		WithBaseURL(srv.URL),
		WithBodies([]BodyInfo{BodiesByName["sun"]}),
	)
	obs := astro.Observer{LatDeg: 51.5, LonDeg: 0}
	at := time.Date(2024, 1, 1, 12, 0, 10, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, err := p.Positions(context.Background(), at.Add(time.Duration(i)*time.Second), obs); err != nil {
			t.Fatalf("Positions failed: %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (same minute, same observer)", hits)
	}

	// A distant observer must not reuse the cached snapshot.
	if _, err := p.Positions(context.Background(), at, astro.Observer{LatDeg: -33.9, LonDeg: 151.2}); err != nil {
		t.Fatalf("Positions failed: %v", err)
	}
	if hits != 2 {
		t.Errorf("server hits = %d, want 2", hits)
	}
}

func TestHorizonsProvider_ErrorResponse(t *testing.T) {
	srv := fakeHorizons(t, map[string][2]float64{}, nil)
	defer srv.Close()

	p := NewHorizonsProvider(
		WithBaseURL(srv.URL),
		WithBodies([]BodyInfo{BodiesByName["pluto"]}),
	)
	_, err := p.Positions(context.Background(), time.Now(), astro.Observer{})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "Pluto") {
		t.Errorf("error %q should name the body", err)
	}
}

func TestHorizonsProvider_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewHorizonsProvider(WithBaseURL(srv.URL), WithBodies(Bodies[:1]))
	_, err := p.Positions(context.Background(), time.Now(), astro.Observer{})
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("err = %v, want status 503", err)
	}
}

func TestHorizonsProvider_Canceled(t *testing.T) {
	p := NewHorizonsProvider(WithBaseURL("http://127.0.0.1:1"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Positions(ctx, time.Now(), astro.Observer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestHorizonsProvider_Available(t *testing.T) {
	p := NewHorizonsProvider(WithBodies([]BodyInfo{BodiesByName["moon"]}))

	tests := []struct {
		body string
		want bool
	}{
		{"Moon", true},
		{"luna", true},
		{"Sun", false},
		{"Chiron", false},
	}
	for _, tc := range tests {
		t.Run(tc.body, func(t *testing.T) {
			if got := p.Available(tc.body); got != tc.want {
				t.Errorf("Available(%q) = %v, want %v", tc.body, got, tc.want)
			}
		})
	}
}

func TestHorizonsProvider_Positions_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	provider := NewHorizonsProvider(WithBodies([]BodyInfo{BodiesByName["sun"]}))
	obs := astro.Observer{LatDeg: 35.4267, LonDeg: -116.8900, Name: "Goldstone"}

	at := time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC) // March equinox
	got, err := provider.Positions(context.Background(), at, obs)
	if err != nil {
		t.Fatalf("Positions failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(positions) = %d, want 1", len(got))
	}
	if d := astro.AngularDistance(got[0].AbsoluteDegree, 0); d > 0.1 {
		t.Errorf("Sun at equinox = %v, want ~0°", got[0].AbsoluteDegree)
	}
	if got[0].Retrograde {
		t.Error("Sun should never be retrograde")
	}
}

func TestParseEclipticLine(t *testing.T) {
	tests := []struct {
		line    string
		wantLon float64
		wantLat float64
		wantErr bool
	}{
		{
			line:    "2025-Dec-05 00:00 *   261.032124  1.878027",
			wantLon: 261.032124,
			wantLat: 1.878027,
		},
		{
			line:    "2025-Dec-05 01:00 Cm  270.255103  -0.668754",
			wantLon: 270.255103,
			wantLat: -0.668754,
		},
		{
			line:    "2025-Dec-05 02:50      85.908122  -1.510301",
			wantLon: 85.908122,
			wantLat: -1.510301,
		},
		{
			line:    "2025-Dec-05 02:50 *m  n.a.",
			wantErr: true,
		},
		{
			line:    "invalid",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		name := tc.line
		if len(name) > 20 {
			name = name[:20]
		}
		t.Run(name, func(t *testing.T) {
			s, err := parseEclipticLine(tc.line)
			if tc.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.lon != tc.wantLon {
				t.Errorf("Lon = %v, want %v", s.lon, tc.wantLon)
			}
			if s.lat != tc.wantLat {
				t.Errorf("Lat = %v, want %v", s.lat, tc.wantLat)
			}
		})
	}
}

func TestParseHorizonsResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr error
	}{
		{
			name: "two rows",
			body: `{"result":"$$SOE\n2024-Jan-01 00:00   10.0  0.0\n2024-Jan-01 01:00   10.5  0.0\n$$EOE"}`,
			want: 2,
		},
		{
			name:    "empty table",
			body:    `{"result":"$$SOE\n$$EOE"}`,
			wantErr: ErrNoData,
		},
		{
			name: "api error",
			body: `{"error":"bad COMMAND"}`,
		},
		{
			name: "no markers",
			body: `{"result":"nothing here"}`,
		},
		{
			name: "not json",
			body: `<html>`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseHorizonsResponse([]byte(tc.body))
			if tc.want > 0 {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if len(got) != tc.want {
					t.Errorf("len = %d, want %d", len(got), tc.want)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestParseHorizonsDateTime(t *testing.T) {
	got, err := parseHorizonsDateTime("2025-Dec-05 14:30")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := time.Date(2025, 12, 5, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := parseHorizonsDateTime("05/12/2025"); err == nil {
		t.Error("Expected error for unsupported layout")
	}
}

func TestObserverMatch(t *testing.T) {
	a := astro.Observer{LatDeg: 40.0, LonDeg: -74.0}
	if !observerMatch(a, astro.Observer{LatDeg: 40.05, LonDeg: -74.05}) {
		t.Error("nearby observers should match")
	}
	if observerMatch(a, astro.Observer{LatDeg: 41.0, LonDeg: -74.0}) {
		t.Error("distant observers should not match")
	}
}
