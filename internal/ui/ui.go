// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/state"
	"github.com/litescript/ls-zodiac/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewTransits ViewMode = iota
	ViewAspects
	ViewEvents
)

const viewCount = 3

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg signals a new transit snapshot is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a fetch error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.Manager

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int // Animation tick for the spinner

	// Sub-models
	transits TransitsModel
	aspects  AspectsModel
	events   EventsModel

	// Data snapshot (updated on DataUpdateMsg)
	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager) Model {
	return Model{
		state:    stateMgr,
		viewMode: ViewTransits,
		transits: NewTransitsModel(),
		aspects:  NewAspectsModel(),
		events:   NewEventsModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
		m.transits.Init(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "t":
			m.viewMode = ViewTransits
		case "2", "a":
			m.viewMode = ViewAspects
		case "3", "e":
			m.viewMode = ViewEvents

		case "tab":
			// Cycle through views
			m.viewMode = (m.viewMode + 1) % viewCount

		default:
			// Pass to active view
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header takes ~6 lines, footer ~2 lines
		contentHeight := msg.Height - 8
		m.transits = m.transits.SetSize(msg.Width, contentHeight)
		m.aspects = m.aspects.SetSize(msg.Width, contentHeight)
		m.events = m.events.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		if m.state != nil {
			m = m.applySnapshot(m.state.Snapshot())
		}

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case DataUpdateMsg:
		m = m.applySnapshot(msg.Snapshot)

	case ErrorMsg:
		m.transits = m.transits.SetError(msg.Error)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) applySnapshot(snap state.Snapshot) Model {
	m.snapshot = snap
	m.transits = m.transits.UpdateData(snap)
	m.aspects = m.aspects.UpdateData(snap)
	m.events = m.events.UpdateData(snap)
	if m.state != nil {
		m.transits = m.transits.SetMotion(m.motions(snap))
		m.events = m.events.SetEvents(m.state.RecentEvents(m.events.Rows()))
	}
	return m
}

// motions collects each transit body's daily motion from state history.
func (m Model) motions(snap state.Snapshot) map[string]float64 {
	if snap.Transit == nil {
		return nil
	}
	out := make(map[string]float64, len(snap.Transit.Positions))
	for _, p := range snap.Transit.Positions {
		out[p.Name] = m.state.DailyMotion(p.Name)
	}
	return out
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewTransits:
		m.transits, cmd = m.transits.Update(msg)
	case ViewAspects:
		m.aspects, cmd = m.aspects.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewTransits:
		content = m.transits.View()
	case ViewAspects:
		content = m.aspects.View()
	case ViewEvents:
		content = m.events.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString("\n")

	// Zodiac band with a horizontal truecolor gradient
	band := "  "
	for i, s := range astro.Signs {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(i, len(astro.Signs))))
		band += style.Render(signGlyph(s)) + " "
	}
	b.WriteString(band)
	b.WriteString("\n")

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D946EF")).Render("  ls-zodiac")
	muted := mutedStyle.Render(fmt.Sprintf(" · transits & aspects · v%s", version.Version))
	b.WriteString(title + muted)
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color for a position in the header band.
// Blue (#3B82F6) -> Purple (#8B5CF6) -> Magenta (#D946EF) -> Pink (#EC4899)
func gradientColor(col, width int) string {
	xRatio := 0.0
	if width > 1 {
		xRatio = float64(col) / float64(width-1)
	}

	var r, g, b float64
	if xRatio < 0.33 {
		t := xRatio / 0.33
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else if xRatio < 0.66 {
		t := (xRatio - 0.33) / 0.33
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	} else {
		t := (xRatio - 0.66) / 0.34
		r = 217 + t*(236-217)
		g = 70 + t*(72-70)
		b = 239 + t*(153-239)
	}

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	i := int(v)
	if i > 255 {
		return 255
	}
	if i < 0 {
		return 0
	}
	return i
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Transits", "[2] Aspects", "[3] Events"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, mutedStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.hasData():
		status = accentStyle.Render(spinner) + mutedStyle.Render(" next refresh "+m.nextRefresh().Format("15:04"))
		if m.snapshot.FetchDuration > 0 {
			status += mutedStyle.Render(" (" + m.snapshot.FetchDuration.Round(time.Millisecond).String() + ")")
		}
	default:
		status = accentStyle.Render(spinner) + mutedStyle.Render(" Waiting for data...")
	}

	var help string
	switch m.viewMode {
	case ViewEvents:
		help = mutedStyle.Render("tab: switch view | q: quit")
	default:
		help = mutedStyle.Render("↑↓: navigate | tab: switch view | q: quit")
	}

	return "  " + status + "  " + mutedStyle.Render("|") + "  " + help
}

// hasData reports whether a successful fetch has arrived.
func (m Model) hasData() bool {
	if m.state != nil {
		return m.state.HasData()
	}
	return m.snapshot.Transit != nil
}

func (m Model) nextRefresh() time.Time {
	interval := state.DefaultConfig().RefreshInterval
	if m.state != nil {
		interval = m.state.RefreshInterval()
	}
	return m.snapshot.LastFetch.Add(interval).Local()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
