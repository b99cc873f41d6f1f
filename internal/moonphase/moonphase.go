// Package moonphase classifies the lunar phase from the mean synodic cycle.
//
// The cycle is anchored to a reference new moon and advanced at the mean
// synodic rate, which keeps the classification deterministic and cheap to
// recompute every second. It is independent of the ephemeris: the dial's
// phase icon and the illuminated-fraction readout come from different models
// and can disagree by a fraction of a percent.
package moonphase

import (
	"math"
	"time"
)

// SynodicMonth is the mean length of the lunar phase cycle in days.
const SynodicMonth = 29.530588853

// epoch is a reference new moon: 2000-01-06 18:14 UTC.
var epoch = time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC)

// Phase is one of the eight named lunar phases.
type Phase int

const (
	NewMoon Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	ThirdQuarter
	WaningCrescent
)

// String returns the display name of the phase.
func (p Phase) String() string {
	switch p {
	case NewMoon:
		return "New Moon"
	case WaxingCrescent:
		return "Waxing Crescent"
	case FirstQuarter:
		return "First Quarter"
	case WaxingGibbous:
		return "Waxing Gibbous"
	case FullMoon:
		return "Full Moon"
	case WaningGibbous:
		return "Waning Gibbous"
	case ThirdQuarter:
		return "Third Quarter"
	case WaningCrescent:
		return "Waning Crescent"
	default:
		return "Unknown"
	}
}

// Glyph returns a single-rune representation for compact display.
func (p Phase) Glyph() rune {
	switch p {
	case NewMoon:
		return '🌑'
	case WaxingCrescent:
		return '🌒'
	case FirstQuarter:
		return '🌓'
	case WaxingGibbous:
		return '🌔'
	case FullMoon:
		return '🌕'
	case WaningGibbous:
		return '🌖'
	case ThirdQuarter:
		return '🌗'
	case WaningCrescent:
		return '🌘'
	default:
		return '○'
	}
}

// State holds the phase classification for an instant.
type State struct {
	Phase    Phase
	AgeDays  float64 // Days since the preceding new moon, [0, SynodicMonth)
	Fraction float64 // AgeDays / SynodicMonth, [0, 1)
}

// Compute returns the lunar phase state for the given instant.
func Compute(t time.Time) State {
	days := float64(t.UnixMilli()-epoch.UnixMilli()) / 86400000.0

	// Mathematical modulo: the age must never come out negative, even for
	// instants before the reference new moon.
	age := math.Mod(days, SynodicMonth)
	if age < 0 {
		age += SynodicMonth
	}

	fraction := age / SynodicMonth

	return State{
		Phase:    classify(fraction),
		AgeDays:  age,
		Fraction: fraction,
	}
}

// classify maps a cycle fraction to a named phase using fixed,
// non-overlapping boundaries.
func classify(fraction float64) Phase {
	switch {
	case fraction < 0.03:
		return NewMoon
	case fraction < 0.23:
		return WaxingCrescent
	case fraction < 0.27:
		return FirstQuarter
	case fraction < 0.48:
		return WaxingGibbous
	case fraction < 0.52:
		return FullMoon
	case fraction < 0.73:
		return WaningGibbous
	case fraction < 0.77:
		return ThirdQuarter
	case fraction < 0.97:
		return WaningCrescent
	default:
		return NewMoon
	}
}
