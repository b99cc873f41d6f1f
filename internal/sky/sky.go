// Package sky maps celestial positions onto the clock dial and classifies
// the sky state for theming.
package sky

import "math"

// State is the discrete sky condition derived from the Sun's altitude.
type State int

const (
	Day State = iota
	Twilight
	Night
)

// String returns the display name of the sky state.
func (s State) String() string {
	switch s {
	case Day:
		return "Day"
	case Twilight:
		return "Twilight"
	case Night:
		return "Night"
	default:
		return "Unknown"
	}
}

// Twilight band boundaries in degrees of solar altitude.
const (
	dayBoundaryDeg   = 5.0
	nightBoundaryDeg = -5.0
)

// Classify maps the Sun's altitude (radians) to a sky state.
// Exactly 5 degrees is Twilight; exactly -5 degrees is Night. There is no
// hysteresis, so successive reads straddling a boundary can flip-flop;
// acceptable for a display-only classifier.
func Classify(sunAltRad float64) State {
	altDeg := sunAltRad * 180 / math.Pi
	switch {
	case altDeg > dayBoundaryDeg:
		return Day
	case altDeg > nightBoundaryDeg:
		return Twilight
	default:
		return Night
	}
}

// DialPoint is a display position on the clock dial: a rotation angle and a
// radial offset from the dial's outer edge toward its center.
type DialPoint struct {
	AngleDeg        float64 // Screen rotation angle in degrees
	RadialOffsetPct float64 // 0 = high (zenith), 100 = low (nadir)
}

// Project converts a body's altitude and azimuth (radians) to a dial point.
//
// The azimuth is rotated by 180 degrees so azimuth 0 (south) lands at screen
// angle 180, keeping the mapping visually stable as bodies cross the
// meridian. The radial offset is linear in sin(altitude), not in the angle
// itself; a deliberate flattening, not a true spherical projection.
func Project(altRad, azRad float64) DialPoint {
	offset := (1 - math.Sin(altRad)) * 50
	if offset < 0 {
		offset = 0
	} else if offset > 100 {
		offset = 100
	}

	return DialPoint{
		AngleDeg:        azRad*180/math.Pi + 180,
		RadialOffsetPct: offset,
	}
}
