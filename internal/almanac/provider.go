// Package almanac derives the per-instant celestial snapshot that drives the
// dial: rise, set and noon times, sun and moon positions, and the moon's
// illuminated fraction.
package almanac

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/litescript/ls-skyclock/internal/astro"
)

// MoonPosition bundles the Moon's horizontal position with the orientation
// angle of its apparent disk.
type MoonPosition struct {
	astro.Horizontal
	ParallacticAngle float64 // radians
}

// Snapshot is the derived celestial state for one instant and location.
// It is recomputed whenever the instant or the location changes and is never
// persisted.
type Snapshot struct {
	Sunrise   time.Time
	Sunset    time.Time
	SolarNoon time.Time

	// Moonrise and Moonset are nil when the event does not occur on the
	// instant's local day (polar and extreme-latitude cases).
	Moonrise *time.Time
	Moonset  *time.Time

	MoonIllumination float64 // [0,1]

	Sun  astro.Horizontal
	Moon MoonPosition
}

// Provider computes celestial snapshots. The rest of the program treats the
// ephemeris as a supplied capability and never reimplements it.
type Provider interface {
	Compute(t time.Time, obs astro.Observer) Snapshot
}

// Local computes snapshots from the built-in ephemeris. The zero value is
// ready to use.
type Local struct{}

// Compute derives the snapshot for the instant's local calendar day.
func (Local) Compute(t time.Time, obs astro.Observer) Snapshot {
	loc := t.Location()
	year, month, day := t.Date()

	rise, set := sunrise.SunriseSunset(obs.LatDeg, obs.LonDeg, year, month, day)

	var noon time.Time
	if !rise.IsZero() && !set.IsZero() {
		rise = rise.In(loc)
		set = set.In(loc)
		noon = rise.Add(set.Sub(rise) / 2)
	}

	dayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	moonAlt := func(at time.Time) float64 {
		return astro.MoonHorizontal(at, obs).Alt
	}
	moonrise := findCrossing(moonAlt, dayStart, dayEnd, crossingUp)
	moonset := findCrossing(moonAlt, dayStart, dayEnd, crossingDown)

	moonEq := astro.MoonEquatorial(t)

	return Snapshot{
		Sunrise:          rise,
		Sunset:           set,
		SolarNoon:        noon,
		Moonrise:         moonrise,
		Moonset:          moonset,
		MoonIllumination: astro.MoonIllumination(t),
		Sun:              astro.SunHorizontal(t, obs),
		Moon: MoonPosition{
			Horizontal:       moonEq.ToHorizontal(obs, t),
			ParallacticAngle: astro.ParallacticAngle(moonEq, obs, t),
		},
	}
}
