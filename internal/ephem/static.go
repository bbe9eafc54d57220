package ephem

import (
	"context"
	"time"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/chart"
)

// StaticProvider returns a fixed set of positions regardless of time.
// Transit charts loaded from disk are served through it.
type StaticProvider struct {
	name      string
	positions []chart.Position
}

// NewStaticProvider wraps a fixed position list.
func NewStaticProvider(name string, positions []chart.Position) *StaticProvider {
	return &StaticProvider{name: name, positions: clonePositions(positions)}
}

// Name implements Provider.
func (p *StaticProvider) Name() string {
	return p.name
}

// Available implements Provider.
func (p *StaticProvider) Available(body string) bool {
	_, ok := chart.Find(p.positions, body)
	return ok
}

// Positions implements Provider.
func (p *StaticProvider) Positions(ctx context.Context, _ time.Time, _ astro.Observer) ([]chart.Position, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(p.positions) == 0 {
		return nil, ErrNoData
	}
	return clonePositions(p.positions), nil
}
