package ephem

import (
	"context"
	"time"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/chart"
)

// SolarProvider computes the Sun and chart angles offline.
// It needs no network and never fails, so it backs the auto mode.
type SolarProvider struct{}

// NewSolarProvider creates an offline provider.
func NewSolarProvider() *SolarProvider {
	return &SolarProvider{}
}

// Name implements Provider.
func (p *SolarProvider) Name() string {
	return "Solar"
}

// Available implements Provider.
func (p *SolarProvider) Available(body string) bool {
	switch body {
	case chart.Sun, chart.Ascendant, chart.Midheaven:
		return true
	}
	return false
}

// Positions implements Provider.
func (p *SolarProvider) Positions(ctx context.Context, t time.Time, obs astro.Observer) ([]chart.Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	asc, mc := astro.ChartAngles(t, obs)
	return []chart.Position{
		chart.NewPosition(chart.Sun, astro.SunLongitude(t)),
		chart.NewPosition(chart.Ascendant, asc),
		chart.NewPosition(chart.Midheaven, mc),
	}, nil
}
