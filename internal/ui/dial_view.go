package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyclock/internal/alarm"
	"github.com/litescript/ls-skyclock/internal/facts"
	"github.com/litescript/ls-skyclock/internal/sky"
	"github.com/litescript/ls-skyclock/internal/state"
)

// Terminal cells are roughly twice as tall as wide; stretch x to keep the
// dial round.
const aspectRatio = 2.0

// DialModel renders the clock dial: sun and moon placed by the projection,
// themed by the sky state.
type DialModel struct {
	width  int
	height int

	transform ViewTransform
	snapshot  state.Snapshot

	fact      string
	factBody  facts.Body
	factShown bool
}

// NewDialModel creates a dial model with the identity transform.
func NewDialModel() DialModel {
	return DialModel{transform: NewViewTransform()}
}

// SetSize updates the viewport size.
func (m DialModel) SetSize(width, height int) DialModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData installs a fresh state snapshot.
func (m DialModel) UpdateData(snap state.Snapshot) DialModel {
	m.snapshot = snap
	return m
}

// SetFact installs or clears the active fact callout.
func (m DialModel) SetFact(fact string, body facts.Body, shown bool) DialModel {
	m.fact = fact
	m.factBody = body
	m.factShown = shown
	return m
}

// Update handles pan/zoom keys.
func (m DialModel) Update(msg tea.Msg) (DialModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "+", "=":
			m.transform = m.transform.ZoomIn()
		case "-", "_":
			m.transform = m.transform.ZoomOut()
		case "left", "h":
			m.transform = m.transform.Pan(panStep, 0)
		case "right", "l":
			m.transform = m.transform.Pan(-panStep, 0)
		case "up", "k":
			m.transform = m.transform.Pan(0, 1)
		case "down", "j":
			m.transform = m.transform.Pan(0, -1)
		case "0":
			m.transform = m.transform.Reset()
		}
	}
	return m, nil
}

// View renders the dial view.
func (m DialModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Dial view requires a larger terminal"
	}

	canvasHeight := m.height - 4

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCanvas(m.width, canvasHeight))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m DialModel) renderHeader() string {
	snap := m.snapshot
	theme := themeFor(snap.Sky)
	accent := lipgloss.NewStyle().Foreground(theme.Accent)

	clock := snap.Now.Format("15:04:05")
	phase := fmt.Sprintf("%c %s (%.1f d)", snap.Phase.Phase.Glyph(), snap.Phase.Phase, snap.Phase.AgeDays)
	zoom := fmt.Sprintf("zoom %.2gx", m.transform.Scale)

	return fmt.Sprintf("%s | %s | %s | %s",
		titleStyle.Render(clock),
		accent.Render(snap.Sky.String()),
		accent.Render(phase),
		dimStyle.Render(zoom))
}

func (m DialModel) renderCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
		}
	}

	theme := themeFor(m.snapshot.Sky)

	cx := width/2 + m.transform.XOffset
	cy := height/2 - m.transform.YOffset

	// Outer dial radius in cells, before aspect stretch.
	base := float64(height)/2 - 1
	if float64(width)/aspectRatio/2-1 < base {
		base = float64(width)/aspectRatio/2 - 1
	}
	radius := base * m.transform.Scale

	put := func(x, y int, r rune, c lipgloss.Color) {
		if x >= 0 && x < width && y >= 0 && y < height {
			canvas[y][x] = r
			colors[y][x] = c
		}
	}

	// polar converts a dial angle (degrees, 0 = top, clockwise) and radius
	// fraction to canvas coordinates.
	polar := func(angleDeg, frac float64) (int, int) {
		th := angleDeg * math.Pi / 180
		x := cx + int(math.Round(radius*frac*math.Sin(th)*aspectRatio))
		y := cy - int(math.Round(radius*frac*math.Cos(th)))
		return x, y
	}

	// Hour ticks on the outer ring.
	for hour := 0; hour < 24; hour++ {
		x, y := polar(float64(hour)*15, 1)
		put(x, y, glyphTickMark, theme.Ring)
	}

	// Horizon ring: radial offset 50 is altitude zero.
	for deg := 0; deg < 360; deg += 10 {
		x, y := polar(float64(deg), 0.5)
		put(x, y, glyphHorizon, theme.Horizon)
	}

	// Cardinal labels just outside the ring. The projection's rotation puts
	// azimuth 0 (south) at dial angle 180.
	for _, c := range []struct {
		label rune
		angle float64
	}{{'N', 0}, {'E', 90}, {'S', 180}, {'W', 270}} {
		x, y := polar(c.angle, 1)
		put(x, y, c.label, theme.Text)
	}

	put(cx, cy, glyphCenter, theme.Ring)

	if m.snapshot.Located {
		sun := sky.Project(m.snapshot.Celestial.Sun.Alt, m.snapshot.Celestial.Sun.Az)
		x, y := polar(sun.AngleDeg, sun.RadialOffsetPct/100)
		put(x, y, glyphSun, theme.Sun)

		moon := sky.Project(m.snapshot.Celestial.Moon.Alt, m.snapshot.Celestial.Moon.Az)
		x, y = polar(moon.AngleDeg, moon.RadialOffsetPct/100)
		put(x, y, '☾', theme.Moon)
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if canvas[y][x] == ' ' {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(colors[y][x]).Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m DialModel) renderStatus() string {
	snap := m.snapshot
	lines := make([]string, 0, 2)

	switch snap.Alarm {
	case alarm.Ringing:
		lines = append(lines, ringingStyle.Render("☀ SUNRISE — [enter] dismiss"))
	case alarm.Armed:
		lines = append(lines, fmt.Sprintf("Alarm %s  %s",
			snap.AlarmTarget.Format("15:04"),
			dimStyle.Render("[x] clear")))
	default:
		lines = append(lines, dimStyle.Render("[a] sunrise alarm  [s]/[m] facts  [+/-] zoom  [0] reset"))
	}

	if m.factShown {
		lines = append(lines, factStyle.Render(fmt.Sprintf("%s: %s", m.factBody, m.fact)))
	} else if snap.Advisory != "" {
		lines = append(lines, advisoryStyle.Render("⚠ "+snap.Advisory))
	}

	return strings.Join(lines, "\n")
}
