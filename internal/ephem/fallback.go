package ephem

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/chart"
)

// FallbackProvider tries a primary provider and uses a secondary on failure.
type FallbackProvider struct {
	primary   Provider
	secondary Provider
	logger    *zap.Logger
}

// NewFallbackProvider creates a provider that falls back to secondary.
func NewFallbackProvider(primary, secondary Provider, logger *zap.Logger) *FallbackProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackProvider{primary: primary, secondary: secondary, logger: logger}
}

// Name implements Provider.
func (p *FallbackProvider) Name() string {
	return p.primary.Name() + "+" + p.secondary.Name()
}

// Available implements Provider.
func (p *FallbackProvider) Available(body string) bool {
	return p.primary.Available(body) || p.secondary.Available(body)
}

// Positions implements Provider.
func (p *FallbackProvider) Positions(ctx context.Context, t time.Time, obs astro.Observer) ([]chart.Position, error) {
	positions, err := p.primary.Positions(ctx, t, obs)
	if err == nil {
		return positions, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	p.logger.Warn("primary provider failed, using fallback",
		zap.String("primary", p.primary.Name()),
		zap.String("fallback", p.secondary.Name()),
		zap.Error(err))
	return p.secondary.Positions(ctx, t, obs)
}
