package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-zodiac/internal/chart"
	"github.com/litescript/ls-zodiac/internal/state"
)

// Styles for the transit views
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	retroStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E84A27"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// TransitsModel lists current transit positions.
type TransitsModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
	motion   map[string]float64 // degrees per day, from state history
	lastErr  error
}

// NewTransitsModel creates a new transits model.
func NewTransitsModel() TransitsModel {
	return TransitsModel{}
}

// Init implements the Bubble Tea model interface.
func (m TransitsModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m TransitsModel) SetSize(width, height int) TransitsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m TransitsModel) UpdateData(snapshot state.Snapshot) TransitsModel {
	m.snapshot = snapshot
	m.lastErr = nil
	if n := len(m.positions()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m
}

// SetMotion sets per-body daily motion. Bodies without history are omitted.
func (m TransitsModel) SetMotion(motion map[string]float64) TransitsModel {
	m.motion = motion
	return m
}

// SetError sets the last error for display.
func (m TransitsModel) SetError(err error) TransitsModel {
	m.lastErr = err
	return m
}

func (m TransitsModel) positions() []chart.Position {
	if m.snapshot.Transit == nil {
		return nil
	}
	return m.snapshot.Transit.Positions
}

// Update handles messages.
func (m TransitsModel) Update(msg tea.Msg) (TransitsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(m.positions())
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if n > 0 {
				m.cursor = n - 1
			}
		}
	}
	return m, nil
}

// Selected returns the position under the cursor, if any.
func (m TransitsModel) Selected() (chart.Position, bool) {
	positions := m.positions()
	if m.cursor < 0 || m.cursor >= len(positions) {
		return chart.Position{}, false
	}
	return positions[m.cursor], true
}

// View renders the transits table.
func (m TransitsModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	positions := m.positions()
	if positions == nil && m.lastErr == nil {
		b.WriteString("Waiting for positions...\n")
		return b.String()
	}

	title := "Transits"
	if m.snapshot.Transit != nil {
		title += fmt.Sprintf(" · %s · %s", m.snapshot.Transit.Timestamp.UTC().Format("2006-01-02 15:04 MST"), m.snapshot.Transit.Source)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	header := fmt.Sprintf("%-3s %-12s %-14s %-8s %-12s %-9s", "", "Body", "Sign", "Degree", "Progress", "Motion")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for i, p := range positions {
		row := fmt.Sprintf("%-3s %-12s %s %-12s %6.2f°  %s %s",
			bodyGlyph(p.Name),
			truncate(p.Name, 12),
			signGlyph(p.Sign()),
			p.Sign(),
			p.Degree(),
			renderSignBar(p.Degree(), 10),
			m.renderMotion(p.Name),
		)
		if i == m.cursor {
			row = selectedRowStyle.Render(row)
		} else {
			row = rowStyle.Render(row)
		}
		if p.Retrograde {
			row += " " + retroStyle.Render("℞")
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	return b.String()
}

// renderMotion formats daily motion, blank until two samples exist.
func (m TransitsModel) renderMotion(body string) string {
	v, ok := m.motion[body]
	if !ok || v == 0 {
		return fmt.Sprintf("%-9s", "")
	}
	return fmt.Sprintf("%+6.2f°/d", v)
}

// renderSignBar draws how far through its sign a body has travelled.
func renderSignBar(degree float64, width int) string {
	filled := int(degree / 30 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
