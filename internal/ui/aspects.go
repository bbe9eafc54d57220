package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-zodiac/internal/chart"
	"github.com/litescript/ls-zodiac/internal/state"
)

var aspectColors = map[chart.AspectType]lipgloss.Color{
	chart.Conjunction: lipgloss.Color("#9D4EDD"),
	chart.Opposition:  lipgloss.Color("#E84A27"),
	chart.Trine:       lipgloss.Color("#3B82F6"),
	chart.Square:      lipgloss.Color("#EC4899"),
	chart.Sextile:     lipgloss.Color("#22D3EE"),
}

var aspectGlyphs = map[chart.AspectType]string{
	chart.Conjunction: "☌",
	chart.Opposition:  "☍",
	chart.Trine:       "△",
	chart.Square:      "□",
	chart.Sextile:     "⚹",
}

// AspectsModel lists transit-to-natal aspects, tightest first.
type AspectsModel struct {
	width    int
	height   int
	offset   int
	snapshot state.Snapshot
}

// NewAspectsModel creates a new aspects model.
func NewAspectsModel() AspectsModel {
	return AspectsModel{}
}

// SetSize updates the viewport size.
func (m AspectsModel) SetSize(width, height int) AspectsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m AspectsModel) UpdateData(snapshot state.Snapshot) AspectsModel {
	m.snapshot = snapshot
	if m.offset >= len(snapshot.Aspects) {
		m.offset = 0
	}
	return m
}

// Update handles scrolling.
func (m AspectsModel) Update(msg tea.Msg) (AspectsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.snapshot.Aspects)-1 {
				m.offset++
			}
		}
	}
	return m, nil
}

func (m AspectsModel) maxRows() int {
	rows := m.height - 8 // Leave room for header and head aspect
	if rows < 5 {
		rows = 5
	}
	return rows
}

// View renders the aspects list.
func (m AspectsModel) View() string {
	var b strings.Builder

	if len(m.snapshot.Natal) == 0 {
		b.WriteString(mutedStyle.Render("No natal chart loaded (use --natal)"))
		b.WriteString("\n")
		return b.String()
	}

	title := "Transits to " + m.snapshot.NatalName
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if m.snapshot.Head != nil {
		b.WriteString("  Strongest: " + renderAspect(*m.snapshot.Head))
		b.WriteString("\n\n")
	}

	header := fmt.Sprintf("%-12s %-14s %-12s %7s  %s", "Transit", "Aspect", "Natal", "Orb", "Tightness")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	aspects := m.snapshot.Aspects
	if len(aspects) == 0 {
		b.WriteString("  No aspects in orb\n")
		return b.String()
	}

	end := m.offset + m.maxRows()
	if end > len(aspects) {
		end = len(aspects)
	}
	for _, a := range aspects[m.offset:end] {
		style := lipgloss.NewStyle().Foreground(aspectColors[a.Type])
		row := fmt.Sprintf("%-12s %s %-12s %-12s %6.2f°  %s",
			truncate(a.Planet1.Name, 12),
			style.Render(aspectGlyphs[a.Type]),
			a.Type,
			truncate(a.Planet2.Name, 12),
			a.Orb,
			renderOrbBar(a, 10),
		)
		b.WriteString(rowStyle.Render(row))
		b.WriteString("\n")
	}

	if len(aspects) > m.maxRows() {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d aspects", m.offset+1, end, len(aspects)))
	}
	return b.String()
}

func renderAspect(a chart.Aspect) string {
	style := lipgloss.NewStyle().Foreground(aspectColors[a.Type]).Bold(true)
	return fmt.Sprintf("%s %s natal %s (orb %.2f°)",
		a.Planet1.Name, style.Render(aspectGlyphs[a.Type]+" "+string(a.Type)), a.Planet2.Name, a.Orb)
}

// renderOrbBar fills more cells the closer an aspect is to exact.
func renderOrbBar(a chart.Aspect, width int) string {
	maxOrb := 8.0
	for _, def := range chart.AspectDefs {
		if def.Type == a.Type {
			maxOrb = def.MaxOrb
			break
		}
	}
	tightness := 1 - a.Orb/maxOrb
	if tightness < 0 {
		tightness = 0
	}
	filled := int(tightness * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
