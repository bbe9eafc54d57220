// Package export renders readings as JSON documents and plain text tables.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-zodiac/internal/chart"
	"github.com/litescript/ls-zodiac/internal/numerology"
	"github.com/litescript/ls-zodiac/internal/state"
)

// Reading is the JSON-serializable result of one command.
type Reading struct {
	GeneratedAt   time.Time                 `json:"generated_at"`
	At            time.Time                 `json:"at,omitzero"`
	Source        string                    `json:"source,omitempty"`
	Positions     []PositionExport          `json:"positions,omitempty"`
	Aspects       []AspectExport            `json:"aspects,omitempty"`
	Ingresses     []string                  `json:"ingresses,omitempty"`
	Events        []state.Event             `json:"events,omitempty"`
	Numerology    *NumerologyCard           `json:"numerology,omitempty"`
	Compatibility *numerology.Compatibility `json:"compatibility,omitempty"`
}

// PositionExport is a JSON-friendly position with derived fields.
type PositionExport struct {
	Name           string  `json:"name"`
	AbsoluteDegree float64 `json:"absolute_degree"`
	Sign           string  `json:"sign"`
	Degree         float64 `json:"degree"`
	Retrograde     bool    `json:"retrograde"`
	House          int     `json:"house,omitempty"`
}

// AspectExport is a JSON-friendly aspect.
type AspectExport struct {
	Planet1    string  `json:"planet1"`
	Planet2    string  `json:"planet2"`
	Type       string  `json:"type"`
	Angle      float64 `json:"angle"`
	Orb        float64 `json:"orb"`
	IsSynastry bool    `json:"is_synastry"`
}

// NumerologyCard gathers every number for one person.
type NumerologyCard struct {
	Name        string             `json:"name,omitempty"`
	Birth       string             `json:"birth"`
	System      numerology.System  `json:"system"`
	LifePath    numerology.Result  `json:"life_path"`
	Destiny     *numerology.Result `json:"destiny,omitempty"`
	Active      *numerology.Result `json:"active,omitempty"`
	SoulUrge    *numerology.Result `json:"soul_urge,omitempty"`
	Personality *numerology.Result `json:"personality,omitempty"`
	Target      string             `json:"target,omitempty"`
	Cycles      *numerology.Cycles `json:"cycles,omitempty"`
}

// NewReading starts a reading stamped with the current time.
func NewReading(at time.Time, source string) *Reading {
	return &Reading{GeneratedAt: time.Now().UTC(), At: at, Source: source}
}

// ExportPositions converts positions to their exportable form.
func ExportPositions(positions []chart.Position) []PositionExport {
	out := make([]PositionExport, len(positions))
	for i, p := range positions {
		out[i] = PositionExport{
			Name:           p.Name,
			AbsoluteDegree: p.AbsoluteDegree,
			Sign:           p.Sign().String(),
			Degree:         p.Degree(),
			Retrograde:     p.Retrograde,
			House:          p.House,
		}
	}
	return out
}

// ExportAspects converts aspects to their exportable form, keeping order.
func ExportAspects(aspects []chart.Aspect) []AspectExport {
	out := make([]AspectExport, len(aspects))
	for i, a := range aspects {
		out[i] = AspectExport{
			Planet1:    a.Planet1.Name,
			Planet2:    a.Planet2.Name,
			Type:       string(a.Type),
			Angle:      a.Angle,
			Orb:        a.Orb,
			IsSynastry: a.IsSynastry,
		}
	}
	return out
}

// BuildNumerologyCard computes a card. An empty name yields only the life
// path; a zero target omits the personal cycles.
func BuildNumerologyCard(name string, birth, target time.Time, sys numerology.System) *NumerologyCard {
	card := &NumerologyCard{
		Name:     name,
		Birth:    birth.Format("2006-01-02"),
		System:   sys,
		LifePath: numerology.CalculateLifePath(birth),
	}

	if strings.TrimSpace(name) != "" {
		destiny := numerology.CalculateName(name, sys)
		active := numerology.CalculateActive(name, sys)
		soul := numerology.CalculateSoulUrge(name, sys)
		personality := numerology.CalculatePersonality(name, sys)
		card.Destiny = &destiny
		card.Active = &active
		card.SoulUrge = &soul
		card.Personality = &personality
	}

	if !target.IsZero() {
		cycles := numerology.CalculateCycles(birth, target)
		card.Target = target.Format("2006-01-02")
		card.Cycles = &cycles
	}
	return card
}

// WriteJSON writes the reading as indented JSON.
func (r *Reading) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WritePositionTable writes a text table of positions.
func WritePositionTable(w io.Writer, title string, positions []chart.Position) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", 52))

	if len(positions) == 0 {
		fmt.Fprintln(w, "No positions")
		return
	}

	fmt.Fprintf(w, "%-12s %-12s %8s %9s %2s %5s\n", "Body", "Sign", "Degree", "Absolute", "R", "House")
	fmt.Fprintln(w, strings.Repeat("─", 52))
	for _, p := range positions {
		retro := ""
		if p.Retrograde {
			retro = "R"
		}
		house := ""
		if p.House > 0 {
			house = fmt.Sprintf("%d", p.House)
		}
		fmt.Fprintf(w, "%-12s %-12s %7.2f° %8.2f° %2s %5s\n",
			truncateStr(p.Name, 12), p.Sign(), p.Degree(), p.AbsoluteDegree, retro, house)
	}
}

// WriteAspectTable writes aspects in the order given.
func WriteAspectTable(w io.Writer, title string, aspects []chart.Aspect) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("─", 52))

	if len(aspects) == 0 {
		fmt.Fprintln(w, "No aspects")
		return
	}

	fmt.Fprintf(w, "%-12s %-12s %-12s %7s %6s\n", "Body", "Aspect", "Body", "Angle", "Orb")
	fmt.Fprintln(w, strings.Repeat("─", 52))
	for _, a := range aspects {
		fmt.Fprintf(w, "%-12s %-12s %-12s %6.2f° %5.2f°\n",
			truncateStr(a.Planet1.Name, 12), a.Type, truncateStr(a.Planet2.Name, 12), a.Angle, a.Orb)
	}
	fmt.Fprintf(w, "\nTotal: %d aspects\n", len(aspects))
}

// WriteNumerologyCard writes a numerology card as aligned text.
func WriteNumerologyCard(w io.Writer, card *NumerologyCard) {
	header := "Numerology"
	if card.Name != "" {
		header += " · " + card.Name
	}
	fmt.Fprintf(w, "%s (%s)\n", header, card.System)
	fmt.Fprintln(w, strings.Repeat("─", 52))

	writeResult(w, "Life Path", &card.LifePath)
	writeResult(w, "Destiny", card.Destiny)
	writeResult(w, "Active", card.Active)
	writeResult(w, "Soul Urge", card.SoulUrge)
	writeResult(w, "Personality", card.Personality)

	if card.Cycles != nil {
		fmt.Fprintf(w, "\nCycles for %s: year %d · month %d · day %d\n",
			card.Target, card.Cycles.Year, card.Cycles.Month, card.Cycles.Day)
	}
}

func writeResult(w io.Writer, label string, r *numerology.Result) {
	if r == nil {
		return
	}
	master := ""
	if r.IsMaster {
		master = " (master)"
	}
	fmt.Fprintf(w, "%-12s %2d%-9s %-28s sum %d\n", label, r.Core, master, r.Archetype, r.Sum)
}

// WriteCompatibility writes a compatibility breakdown.
func WriteCompatibility(w io.Writer, a, b string, c numerology.Compatibility) {
	fmt.Fprintf(w, "%s & %s · %s\n", a, b, c.Category)
	fmt.Fprintln(w, strings.Repeat("─", 52))
	for _, m := range c.Matches {
		fmt.Fprintf(w, "%-12s %2d vs %-2d %5d\n", m.Facet, m.A, m.B, m.Score)
	}
	fmt.Fprintf(w, "\nOverall: %.1f (%s)\n", c.OverallScore, c.Tag)
}

// WriteEvents writes transit events one per line.
func WriteEvents(w io.Writer, events []state.Event) {
	for _, e := range events {
		fmt.Fprintf(w, "%s  %-18s %s\n", e.Timestamp.UTC().Format(time.RFC3339), e.Type, e.Message)
	}
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
