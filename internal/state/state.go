// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-zodiac/internal/astro"
	"github.com/litescript/ls-zodiac/internal/chart"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventIngress         EventType = "INGRESS"
	EventAspectFormed    EventType = "ASPECT_FORMED"
	EventAspectSeparated EventType = "ASPECT_SEPARATED"
	EventStationRetro    EventType = "STATION_RETROGRADE"
	EventStationDirect   EventType = "STATION_DIRECT"
)

// Event represents a change between two transit snapshots.
type Event struct {
	Type      EventType        `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Body      string           `json:"body"`
	Sign      string           `json:"sign,omitempty"`
	Aspect    chart.AspectType `json:"aspect,omitempty"`
	Natal     string           `json:"natal,omitempty"`
	Orb       float64          `json:"orb,omitempty"`
	Message   string           `json:"message"`
}

// Transit is one fetched set of positions.
type Transit struct {
	Timestamp time.Time
	Source    string
	Positions []chart.Position
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// BodyHistory tracks the longitude of one body across updates.
type BodyHistory struct {
	Body      string
	Longitude []TimeSeries
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current       *Transit
	lastFetch     time.Time
	lastError     error
	fetchDuration time.Duration

	// Natal chart transits are measured against
	natalName string
	natal     []chart.Position

	// Event detection
	aspects       []chart.Aspect // aspects of the current snapshot
	tracked       []chart.Aspect // aspects still considered in effect
	aspectsPrimed bool
	lastKnown     map[string]chart.Position

	// History buffers
	bodyHistory map[string]*BodyHistory
	maxBodyHist int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxBodyHist     int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodyHist:     96, // Four days at 1 fetch/hour
		MaxEvents:       50, // Last 50 events
		RefreshInterval: 15 * time.Minute,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxBodyHist:     cfg.MaxBodyHist,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		bodyHistory:     make(map[string]*BodyHistory),
		lastKnown:       make(map[string]chart.Position),
	}
}

// SetNatal replaces the natal chart. Aspect tracking restarts from the
// next update without emitting formed/separated events for the swap.
func (m *Manager) SetNatal(name string, positions []chart.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.natalName = name
	m.natal = make([]chart.Position, len(positions))
	copy(m.natal, positions)

	m.aspectsPrimed = false
	m.aspects = nil
	m.tracked = nil
	if m.current != nil {
		m.aspects = chart.CalculateAspects(m.current.Positions, m.natal, true)
		m.tracked = append([]chart.Aspect(nil), m.aspects...)
		m.aspectsPrimed = true
	}
}

// Update atomically updates the state with a new transit snapshot.
func (m *Manager) Update(t *Transit, fetchDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastFetch = time.Now()
	m.lastError = err
	m.fetchDuration = fetchDuration

	if t == nil {
		return
	}

	t = &Transit{
		Timestamp: t.Timestamp,
		Source:    t.Source,
		Positions: append([]chart.Position(nil), t.Positions...),
	}

	var aspects []chart.Aspect
	if len(m.natal) > 0 {
		aspects = chart.CalculateAspects(t.Positions, m.natal, true)
	}

	// Detect events before updating current state
	m.detectEvents(t, aspects)

	m.current = t
	m.aspects = aspects
	m.aspectsPrimed = len(m.natal) > 0
	for _, p := range t.Positions {
		m.lastKnown[p.Name] = p
	}

	m.updateBodyHistory(t)
}

// detectEvents compares the new snapshot with what was last seen. Bodies
// absent from a snapshot, as when a fallback source serves fewer bodies,
// neither move sign nor leave their aspects.
func (m *Manager) detectEvents(t *Transit, aspects []chart.Aspect) {
	now := t.Timestamp
	if now.IsZero() {
		now = time.Now()
	}

	m.detectIngresses(now, t.Positions)
	m.detectStations(now, t.Positions)

	if len(m.natal) == 0 {
		m.tracked = nil
		return
	}

	// A different source re-primes tracking instead of diffing.
	if !m.aspectsPrimed || m.current == nil || m.current.Source != t.Source {
		m.tracked = append([]chart.Aspect(nil), aspects...)
		return
	}

	present := make(map[string]bool, len(t.Positions))
	for _, p := range t.Positions {
		present[p.Name] = true
	}
	prev := make(map[string]bool, len(m.tracked))
	for _, a := range m.tracked {
		prev[a.Key()] = true
	}

	tracked := make([]chart.Aspect, 0, len(aspects))
	seen := make(map[string]bool, len(aspects))
	for _, a := range aspects {
		key := a.Key()
		seen[key] = true
		tracked = append(tracked, a)
		if !prev[key] {
			m.addEvent(aspectEvent(EventAspectFormed, now, a))
		}
	}
	for _, a := range m.tracked {
		if seen[a.Key()] {
			continue
		}
		if !present[a.Planet1.Name] {
			tracked = append(tracked, a)
			continue
		}
		m.addEvent(aspectEvent(EventAspectSeparated, now, a))
	}
	m.tracked = tracked
}

// detectIngresses reports bodies whose sign differs from where they were
// last seen.
func (m *Manager) detectIngresses(now time.Time, positions []chart.Position) {
	var previous []chart.Position
	for _, cur := range positions {
		if prev, ok := m.lastKnown[cur.Name]; ok {
			previous = append(previous, prev)
		}
	}
	for _, ing := range chart.FindIngresses(previous, positions) {
		m.addEvent(Event{
			Type:      EventIngress,
			Timestamp: now,
			Body:      ing.Body,
			Sign:      ing.To.String(),
			Message:   ing.Message(),
		})
	}
}

// detectStations reports bodies whose retrograde flag flipped.
func (m *Manager) detectStations(now time.Time, positions []chart.Position) {
	for _, cur := range positions {
		prev, ok := m.lastKnown[cur.Name]
		if !ok || prev.Retrograde == cur.Retrograde {
			continue
		}
		e := Event{Timestamp: now, Body: cur.Name, Sign: cur.Sign().String()}
		if cur.Retrograde {
			e.Type = EventStationRetro
			e.Message = cur.Name + " Stationed Retrograde in " + e.Sign
		} else {
			e.Type = EventStationDirect
			e.Message = cur.Name + " Stationed Direct in " + e.Sign
		}
		m.addEvent(e)
	}
}

func aspectEvent(typ EventType, now time.Time, a chart.Aspect) Event {
	verb := "forms"
	if typ == EventAspectSeparated {
		verb = "leaves"
	}
	return Event{
		Type:      typ,
		Timestamp: now,
		Body:      a.Planet1.Name,
		Aspect:    a.Type,
		Natal:     a.Planet2.Name,
		Orb:       a.Orb,
		Message:   "Transit " + a.Planet1.Name + " " + verb + " " + string(a.Type) + " to natal " + a.Planet2.Name,
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

func (m *Manager) updateBodyHistory(t *Transit) {
	if m.maxBodyHist <= 0 {
		return
	}
	for _, pos := range t.Positions {
		hist, ok := m.bodyHistory[pos.Name]
		if !ok {
			hist = &BodyHistory{
				Body:      pos.Name,
				Longitude: make([]TimeSeries, 0, m.maxBodyHist),
			}
			m.bodyHistory[pos.Name] = hist
		}

		hist.Longitude = append(hist.Longitude, TimeSeries{Timestamp: t.Timestamp, Value: pos.AbsoluteDegree})
		if len(hist.Longitude) > m.maxBodyHist {
			hist.Longitude = hist.Longitude[1:]
		}
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Transit       *Transit
	NatalName     string
	Natal         []chart.Position
	Aspects       []chart.Aspect // transit-to-natal, tightest orb first
	Head          *chart.Aspect  // most significant current influence
	LastFetch     time.Time
	LastError     error
	FetchDuration time.Duration
	Events        []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	natal := make([]chart.Position, len(m.natal))
	copy(natal, m.natal)

	aspects := make([]chart.Aspect, len(m.aspects))
	copy(aspects, m.aspects)

	var head *chart.Aspect
	if len(aspects) > 0 {
		h := aspects[0]
		head = &h
	}

	var transit *Transit
	if m.current != nil {
		transit = &Transit{
			Timestamp: m.current.Timestamp,
			Source:    m.current.Source,
			Positions: append([]chart.Position(nil), m.current.Positions...),
		}
	}

	return Snapshot{
		Transit:       transit,
		NatalName:     m.natalName,
		Natal:         natal,
		Aspects:       aspects,
		Head:          head,
		LastFetch:     m.lastFetch,
		LastError:     m.lastError,
		FetchDuration: m.fetchDuration,
		Events:        m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events, oldest first.
func (m *Manager) RecentEvents(n int) []Event {
	if n <= 0 {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// DailyMotion estimates a body's motion in degrees per day from its last
// two samples. Negative values mean retrograde motion.
func (m *Manager) DailyMotion(body string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist, ok := m.bodyHistory[body]
	if !ok || len(hist.Longitude) < 2 {
		return 0
	}

	n := len(hist.Longitude)
	p1 := hist.Longitude[n-2]
	p2 := hist.Longitude[n-1]

	days := p2.Timestamp.Sub(p1.Timestamp).Hours() / 24
	if days <= 0 {
		return 0
	}
	return astro.SignedDelta(p1.Value, p2.Value) / days
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// HasData returns true if we have received at least one successful fetch.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
