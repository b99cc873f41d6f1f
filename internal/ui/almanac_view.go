package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyclock/internal/state"
)

// AlmanacModel renders the day's celestial events as a table.
type AlmanacModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewAlmanacModel creates an almanac model.
func NewAlmanacModel() AlmanacModel {
	return AlmanacModel{}
}

// SetSize updates the viewport size.
func (m AlmanacModel) SetSize(width, height int) AlmanacModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData installs a fresh state snapshot.
func (m AlmanacModel) UpdateData(snap state.Snapshot) AlmanacModel {
	m.snapshot = snap
	return m
}

// View renders the almanac table.
func (m AlmanacModel) View() string {
	snap := m.snapshot
	if !snap.Located {
		return dimStyle.Render("Waiting for location...")
	}

	theme := themeFor(snap.Sky)
	label := lipgloss.NewStyle().Foreground(theme.Text).Width(14)
	value := lipgloss.NewStyle().Foreground(theme.Accent)

	row := func(name, val string) string {
		return label.Render(name) + value.Render(val)
	}
	clock := func(t time.Time) string {
		if t.IsZero() {
			return "—"
		}
		return t.Format("15:04")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Almanac"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %.4f, %.4f", snap.Observer.LatDeg, snap.Observer.LonDeg)))
	b.WriteString("\n\n")

	b.WriteString(row("Sunrise", clock(snap.Celestial.Sunrise)) + "\n")
	b.WriteString(row("Solar noon", clock(snap.Celestial.SolarNoon)) + "\n")
	b.WriteString(row("Sunset", clock(snap.Celestial.Sunset)) + "\n")

	// Absent moon events are omitted rather than shown as errors.
	if snap.Celestial.Moonrise != nil {
		b.WriteString(row("Moonrise", clock(*snap.Celestial.Moonrise)) + "\n")
	}
	if snap.Celestial.Moonset != nil {
		b.WriteString(row("Moonset", clock(*snap.Celestial.Moonset)) + "\n")
	}

	b.WriteString(row("Illumination", fmt.Sprintf("%.0f%%", snap.Celestial.MoonIllumination*100)) + "\n")
	b.WriteString(row("Phase", fmt.Sprintf("%c %s", snap.Phase.Phase.Glyph(), snap.Phase.Phase)) + "\n")
	b.WriteString(row("Moon age", fmt.Sprintf("%.1f days", snap.Phase.AgeDays)) + "\n")

	if snap.Advisory != "" {
		b.WriteString("\n")
		b.WriteString(advisoryStyle.Render("⚠ " + snap.Advisory))
	}

	return b.String()
}
