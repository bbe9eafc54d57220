package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-zodiac/internal/state"
)

var eventColors = map[state.EventType]lipgloss.Color{
	state.EventIngress:         lipgloss.Color("#22D3EE"),
	state.EventAspectFormed:    lipgloss.Color("#9D4EDD"),
	state.EventAspectSeparated: lipgloss.Color("60"),
	state.EventStationRetro:    lipgloss.Color("#E84A27"),
	state.EventStationDirect:   lipgloss.Color("#3B82F6"),
}

// EventsModel shows the transit event log, newest last.
type EventsModel struct {
	width  int
	height int
	events []state.Event
}

// NewEventsModel creates a new events model.
func NewEventsModel() EventsModel {
	return EventsModel{}
}

// SetSize updates the viewport size.
func (m EventsModel) SetSize(width, height int) EventsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m EventsModel) UpdateData(snapshot state.Snapshot) EventsModel {
	m.events = snapshot.Events
	return m
}

// SetEvents replaces the events shown, oldest first.
func (m EventsModel) SetEvents(events []state.Event) EventsModel {
	m.events = events
	return m
}

// Rows returns how many events fit the viewport.
func (m EventsModel) Rows() int {
	return max(m.height-2, 5)
}

// View renders the most recent events that fit.
func (m EventsModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Events"))
	b.WriteString("\n")

	if len(m.events) == 0 {
		b.WriteString(mutedStyle.Render("  No events yet"))
		b.WriteString("\n")
		return b.String()
	}

	rows := m.Rows()
	events := m.events
	if len(events) > rows {
		events = events[len(events)-rows:]
	}

	for _, e := range events {
		style := lipgloss.NewStyle().Foreground(eventColors[e.Type])
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			mutedStyle.Render(e.Timestamp.UTC().Format("01-02 15:04")),
			style.Render(fmt.Sprintf("%-18s", e.Type)),
			e.Message,
		))
	}
	return b.String()
}
