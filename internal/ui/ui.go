// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyclock/internal/alarm"
	"github.com/litescript/ls-skyclock/internal/facts"
	"github.com/litescript/ls-skyclock/internal/geoloc"
	"github.com/litescript/ls-skyclock/internal/state"
	"github.com/litescript/ls-skyclock/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDial ViewMode = iota
	ViewAlmanac
)

// Msg types for Bubble Tea.
type (
	// TickMsg is the 1 Hz driving clock.
	TickMsg time.Time

	// LocatedMsg carries the outcome of location acquisition.
	LocatedMsg struct {
		Result geoloc.Result
	}

	// factExpiredMsg retires a fact callout after its display window.
	factExpiredMsg struct {
		gen int
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	mgr    *state.Manager
	picker *facts.Picker

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	locating  spinner.Model

	// Manual location entry
	entering bool
	locInput textinput.Model

	// Sub-models
	dial    DialModel
	almanac AlmanacModel

	// Data snapshot (refreshed each tick)
	snapshot state.Snapshot
}

// New creates the root UI model.
func New(mgr *state.Manager) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))

	ti := textinput.New()
	ti.Placeholder = "51.4769, -0.0005"
	ti.CharLimit = 24
	ti.Width = 24

	return Model{
		mgr:      mgr,
		picker:   facts.NewPicker(),
		viewMode: ViewDial,
		locating: s,
		locInput: ti,
		dial:     NewDialModel(),
		almanac:  NewAlmanacModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.locating.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entering {
			return m.updateLocationEntry(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "d":
			m.viewMode = ViewDial
		case "2", "t":
			m.viewMode = ViewAlmanac
		case "tab":
			m.viewMode = (m.viewMode + 1) % 2

		case "a":
			now := time.Now()
			if err := m.mgr.ArmAlarm(now); err != nil {
				m.statusMsg = fmt.Sprintf("Cannot arm: %v", err)
			} else {
				m.statusMsg = ""
			}
			m = m.refresh()

		case "x":
			m.mgr.ClearAlarm()
			m = m.refresh()

		case "enter", " ":
			if m.snapshot.Alarm == alarm.Ringing {
				m.mgr.DismissAlarm(time.Now())
				m = m.refresh()
			}

		case "s":
			cmds = append(cmds, m.pickFact(facts.Sun))
		case "m":
			cmds = append(cmds, m.pickFact(facts.Moon))

		case "g":
			m.entering = true
			m.locInput.Reset()
			cmds = append(cmds, m.locInput.Focus(), textinput.Blink)

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentHeight := msg.Height - 4
		m.dial = m.dial.SetSize(msg.Width, contentHeight)
		m.almanac = m.almanac.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.snapshot = m.mgr.Tick(time.Time(msg))
		m.dial = m.dial.UpdateData(m.snapshot)
		m.almanac = m.almanac.UpdateData(m.snapshot)

	case LocatedMsg:
		// Manual entry takes precedence over a late lookup result.
		if !m.mgr.Located() {
			m.mgr.SetLocation(msg.Result)
			m = m.refresh()
		}

	case factExpiredMsg:
		if m.picker.Expire(msg.gen) {
			m.dial = m.dial.SetFact("", 0, false)
		}

	case spinner.TickMsg:
		if !m.mgr.Located() {
			var cmd tea.Cmd
			m.locating, cmd = m.locating.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// updateLocationEntry handles keys while the coordinate prompt is open.
func (m Model) updateLocationEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.entering = false
		m.locInput.Blur()
		return m, nil

	case "enter":
		pt, err := parseCoordinates(m.locInput.Value())
		if err != nil {
			m.statusMsg = fmt.Sprintf("Invalid coordinates: %v", err)
			return m, nil
		}
		m.entering = false
		m.locInput.Blur()
		m.statusMsg = ""
		m.mgr.SetLocation(geoloc.Result{Point: pt})
		return m.refresh(), nil
	}

	var cmd tea.Cmd
	m.locInput, cmd = m.locInput.Update(msg)
	return m, cmd
}

// parseCoordinates parses "lat, lon" in decimal degrees.
func parseCoordinates(s string) (geoloc.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geoloc.Point{}, fmt.Errorf("want lat, lon")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geoloc.Point{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geoloc.Point{}, fmt.Errorf("longitude: %w", err)
	}
	if lat < -90 || lat > 90 {
		return geoloc.Point{}, fmt.Errorf("latitude %.4f out of range", lat)
	}
	if lon < -180 || lon > 180 {
		return geoloc.Point{}, fmt.Errorf("longitude %.4f out of range", lon)
	}
	return geoloc.Point{Latitude: lat, Longitude: lon}, nil
}

// refresh pulls the latest snapshot into the sub-models without waiting for
// the next tick.
func (m Model) refresh() Model {
	m.snapshot = m.mgr.Snapshot()
	m.dial = m.dial.UpdateData(m.snapshot)
	m.almanac = m.almanac.UpdateData(m.snapshot)
	return m
}

// pickFact selects a new fact and schedules its expiry. Picking again before
// the window closes supersedes the old fact; its timer is disarmed by the
// generation check.
func (m *Model) pickFact(body facts.Body) tea.Cmd {
	fact, gen := m.picker.Pick(body)
	m.dial = m.dial.SetFact(fact, body, true)
	return tea.Tick(facts.DisplayDuration, func(time.Time) tea.Msg {
		return factExpiredMsg{gen: gen}
	})
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewDial:
		m.dial, cmd = m.dial.Update(msg)
	case ViewAlmanac:
		// The almanac is read-only.
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if !m.mgr.Located() && !m.entering {
		return fmt.Sprintf("\n  %s Acquiring location...\n\n  %s\n",
			m.locating.View(),
			dimStyle.Render("falls back to Greenwich if unavailable"))
	}

	var content string
	switch m.viewMode {
	case ViewDial:
		content = m.dial.View()
	case ViewAlmanac:
		content = m.almanac.View()
	}

	if m.entering {
		prompt := fmt.Sprintf("Set location (lat, lon): %s  %s",
			m.locInput.View(),
			dimStyle.Render("[enter] apply  [esc] cancel"))
		return content + "\n" + prompt
	}

	return content + "\n" + m.renderFooter()
}

func (m Model) renderFooter() string {
	var parts []string
	parts = append(parts, dimStyle.Render(fmt.Sprintf("ls-skyclock v%s", version.Version)))
	parts = append(parts, dimStyle.Render("[tab] view  [g] location  [q] quit"))
	if m.statusMsg != "" {
		parts = append(parts, advisoryStyle.Render(m.statusMsg))
	}
	return strings.Join(parts, "  ")
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
