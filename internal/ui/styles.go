package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-skyclock/internal/sky"
)

// Dial glyphs.
const (
	glyphSun      = '☀'
	glyphHorizon  = '─'
	glyphTickMark = '·'
	glyphCenter   = '+'
)

// Theme bundles the colors for one sky state.
type Theme struct {
	Sun     lipgloss.Color
	Moon    lipgloss.Color
	Ring    lipgloss.Color
	Horizon lipgloss.Color
	Text    lipgloss.Color
	Accent  lipgloss.Color
}

// themes maps each sky state to its palette: warm golds for day, violets
// for twilight, cold grays for night.
var themes = map[sky.State]Theme{
	sky.Day: {
		Sun:     "220", // gold
		Moon:    "252",
		Ring:    "109",
		Horizon: "108",
		Text:    "252",
		Accent:  "214",
	},
	sky.Twilight: {
		Sun:     "209", // sunset orange
		Moon:    "189",
		Ring:    "97",
		Horizon: "132",
		Text:    "250",
		Accent:  "176",
	},
	sky.Night: {
		Sun:     "94",
		Moon:    "230", // moonlight cream
		Ring:    "60",
		Horizon: "238",
		Text:    "245",
		Accent:  "111",
	},
}

// themeFor returns the palette for a sky state.
func themeFor(s sky.State) Theme {
	if t, ok := themes[s]; ok {
		return t
	}
	return themes[sky.Night]
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	advisoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	ringingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	factStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("189"))
)
