// Package ephem supplies body positions for a moment and place.
package ephem

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/chart"
)

var (
	// ErrNoData is returned when a source answers without usable positions.
	ErrNoData = errors.New("ephem: no data returned")

	// ErrUnknownBody is returned for bodies a provider cannot place.
	ErrUnknownBody = errors.New("ephem: unknown body")
)

// Provider defines the interface for position sources.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Positions returns the placements of every body the provider knows,
	// in chart order, for the instant and observer given.
	Positions(ctx context.Context, t time.Time, obs astro.Observer) ([]chart.Position, error)

	// Available returns true if this provider can place the named body.
	Available(body string) bool
}

// Mode represents which position source to use.
type Mode int

const (
	ModeHorizons Mode = iota // JPL Horizons
	ModeSolar                // offline Sun and chart angles only
	ModeAuto                 // Horizons, falling back to solar
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeHorizons:
		return "horizons"
	case ModeSolar:
		return "solar"
	case ModeAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string.
func ParseMode(s string) Mode {
	switch s {
	case "horizons":
		return ModeHorizons
	case "solar":
		return ModeSolar
	case "auto":
		return ModeAuto
	default:
		return ModeAuto
	}
}

// New builds the provider for a mode. Options apply to the Horizons client.
func New(mode Mode, logger *zap.Logger, opts ...HorizonsOption) Provider {
	switch mode {
	case ModeHorizons:
		return NewHorizonsProvider(append([]HorizonsOption{WithLogger(logger)}, opts...)...)
	case ModeSolar:
		return NewSolarProvider()
	default:
		hp := NewHorizonsProvider(append([]HorizonsOption{WithLogger(logger)}, opts...)...)
		return NewFallbackProvider(hp, NewSolarProvider(), logger)
	}
}
