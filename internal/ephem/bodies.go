package ephem

import (
	"fmt"
	"strings"

	"github.com/litescript/ls-zodiac/internal/chart"
)

// TargetID is a NAIF SPICE ID for a solar system body.
type TargetID int

// BodyInfo maps a chart body name onto its Horizons target.
type BodyInfo struct {
	Name    string   // chart body name (e.g., "Sun")
	NAIFID  TargetID // NAIF SPICE ID
	Aliases []string // alternative spellings accepted on input
}

// NAIF SPICE IDs for the bodies cast in a chart.
// Sourced from https://naif.jpl.nasa.gov/pub/naif/toolkit_docs/C/req/naif_ids.html
const (
	NAIFSun     TargetID = 10
	NAIFMoon    TargetID = 301
	NAIFMercury TargetID = 199
	NAIFVenus   TargetID = 299
	NAIFMars    TargetID = 499
	NAIFJupiter TargetID = 599
	NAIFSaturn  TargetID = 699
	NAIFUranus  TargetID = 799
	NAIFNeptune TargetID = 899
	NAIFPluto   TargetID = 999
)

// Bodies is the canonical chart body list, in conventional chart order.
var Bodies = []BodyInfo{
	{Name: chart.Sun, NAIFID: NAIFSun, Aliases: []string{"Sol"}},
	{Name: chart.Moon, NAIFID: NAIFMoon, Aliases: []string{"Luna"}},
	{Name: chart.Mercury, NAIFID: NAIFMercury},
	{Name: chart.Venus, NAIFID: NAIFVenus},
	{Name: chart.Mars, NAIFID: NAIFMars},
	{Name: chart.Jupiter, NAIFID: NAIFJupiter},
	{Name: chart.Saturn, NAIFID: NAIFSaturn},
	{Name: chart.Uranus, NAIFID: NAIFUranus},
	{Name: chart.Neptune, NAIFID: NAIFNeptune},
	{Name: chart.Pluto, NAIFID: NAIFPluto},
}

// BodiesByName maps lowercase names and aliases to body info.
var BodiesByName = func() map[string]BodyInfo {
	m := make(map[string]BodyInfo, len(Bodies)*2)
	for _, b := range Bodies {
		m[strings.ToLower(b.Name)] = b
		for _, alias := range b.Aliases {
			m[strings.ToLower(alias)] = b
		}
	}
	return m
}()

// LookupBody returns body info by name or alias, ignoring case.
func LookupBody(name string) (BodyInfo, bool) {
	b, ok := BodiesByName[strings.ToLower(strings.TrimSpace(name))]
	return b, ok
}

// ResolveBodies looks up each name, failing with ErrUnknownBody on the
// first one not in the catalogue.
func ResolveBodies(names []string) ([]BodyInfo, error) {
	bodies := make([]BodyInfo, 0, len(names))
	for _, name := range names {
		b, ok := LookupBody(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBody, name)
		}
		bodies = append(bodies, b)
	}
	return bodies, nil
}

// BodyNames returns the canonical names of the given bodies.
func BodyNames(bodies []BodyInfo) []string {
	names := make([]string, len(bodies))
	for i, b := range bodies {
		names[i] = b.Name
	}
	return names
}
