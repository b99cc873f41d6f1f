package astro

import (
	"math"
	"time"
)

// sunEclipticLongitude computes the Sun's apparent ecliptic longitude in
// degrees for the given Julian centuries since J2000.0.
// Standard Astronomical Almanac series with the equation of center;
// accuracy ~0.01 degrees, more than enough for a clock dial.
func sunEclipticLongitude(T float64) float64 {
	// Mean longitude
	L0 := 280.46646 + 36000.76983*T + 0.0003032*T*T

	// Mean anomaly
	M := 357.52911 + 35999.05029*T - 0.0001537*T*T
	Mrad := degToRad(normalizeDeg(M))

	// Equation of center
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(Mrad) +
		(0.019993-0.000101*T)*math.Sin(2*Mrad) +
		0.000289*math.Sin(3*Mrad)

	return normalizeDeg(L0 + C)
}

// SunEquatorial returns the Sun's geocentric equatorial coordinates at t.
func SunEquatorial(t time.Time) Equatorial {
	T := JulianCenturies(JulianDate(t))
	lambda := sunEclipticLongitude(T)
	// The Sun's ecliptic latitude never exceeds 1.2 arcseconds; treat as 0.
	return eclipticToEquatorial(lambda, 0, obliquity(T))
}

// SunHorizontal returns the Sun's altitude and azimuth for an observer at t.
func SunHorizontal(t time.Time, obs Observer) Horizontal {
	return SunEquatorial(t).ToHorizontal(obs, t)
}
