package almanac

import "time"

// altitudeFunc returns an altitude in radians at time t.
type altitudeFunc func(t time.Time) float64

// crossingDir describes the direction of a horizon crossing.
type crossingDir int

const (
	crossingUp   crossingDir = iota // altitude increasing through zero (rise)
	crossingDown                    // altitude decreasing through zero (set)
)

const (
	// Sampling every 10 minutes cannot miss a lunar horizon crossing: the
	// Moon takes well over an hour to move a degree in altitude.
	riseSetStep = 10 * time.Minute

	// Bisect down to the clock's resolution.
	riseSetTolerance = time.Second
)

// findCrossing searches [start, end) for the first time the altitude
// function crosses zero in the given direction, using a bracket-then-bisect
// strategy. Returns nil when no crossing occurs in the window.
func findCrossing(f altitudeFunc, start, end time.Time, dir crossingDir) *time.Time {
	prevT := start
	prevAlt := f(prevT)

	for t := start.Add(riseSetStep); !t.After(end); t = t.Add(riseSetStep) {
		alt := f(t)
		if hasCrossing(prevAlt, alt, dir) {
			at := bisect(f, prevT, t, dir)
			return &at
		}
		prevT, prevAlt = t, alt
	}

	return nil
}

func hasCrossing(a1, a2 float64, dir crossingDir) bool {
	switch dir {
	case crossingUp:
		return a1 < 0 && a2 >= 0
	default:
		return a1 > 0 && a2 <= 0
	}
}

// bisect narrows a bracketing interval [a, b] to riseSetTolerance.
func bisect(f altitudeFunc, a, b time.Time, dir crossingDir) time.Time {
	altA := f(a)

	for b.Sub(a) > riseSetTolerance {
		mid := a.Add(b.Sub(a) / 2)
		altM := f(mid)

		if hasCrossing(altA, altM, dir) {
			b = mid
		} else {
			a = mid
			altA = altM
		}
	}

	return a.Add(b.Sub(a) / 2)
}
