package astro

import (
	"math"
	"time"
)

// moonEclipticLongitude computes the Moon's ecliptic longitude in degrees.
// Dominant periodic terms from Meeus Ch. 47; accuracy ~0.3 degrees.
func moonEclipticLongitude(T float64) float64 {
	// Mean longitude
	L := 218.3164477 +
		481267.88123421*T -
		0.0015786*T*T +
		T*T*T/538841 -
		T*T*T*T/65194000

	Drad := degToRad(normalizeDeg(moonMeanElongation(T)))
	Mprad := degToRad(normalizeDeg(moonMeanAnomaly(T)))

	lambda := L +
		6.289*math.Sin(Mprad) +
		1.274*math.Sin(2*Drad-Mprad) +
		0.658*math.Sin(2*Drad) +
		0.214*math.Sin(2*Mprad) +
		0.110*math.Sin(Drad)

	return normalizeDeg(lambda)
}

// moonEclipticLatitude computes the Moon's ecliptic latitude in degrees
// using the dominant terms from Meeus Table 47.B.
func moonEclipticLatitude(T float64) float64 {
	// Argument of latitude
	F := 93.2720950 +
		483202.0175233*T -
		0.0036539*T*T -
		T*T*T/3526000 +
		T*T*T*T/863310000

	Frad := degToRad(normalizeDeg(F))
	Drad := degToRad(normalizeDeg(moonMeanElongation(T)))
	Mprad := degToRad(normalizeDeg(moonMeanAnomaly(T)))

	return 5.128*math.Sin(Frad) +
		0.2806*math.Sin(Mprad+Frad) +
		0.2777*math.Sin(Mprad-Frad) +
		0.1732*math.Sin(2*Drad-Frad)
}

func moonMeanElongation(T float64) float64 {
	return 297.8501921 +
		445267.1114034*T -
		0.0018819*T*T +
		T*T*T/545868 -
		T*T*T*T/113065000
}

func moonMeanAnomaly(T float64) float64 {
	return 134.9633964 +
		477198.8675055*T +
		0.0087414*T*T +
		T*T*T/69699 -
		T*T*T*T/14712000
}

// MoonEquatorial returns the Moon's geocentric equatorial coordinates at t.
func MoonEquatorial(t time.Time) Equatorial {
	T := JulianCenturies(JulianDate(t))
	lambda := moonEclipticLongitude(T)
	beta := moonEclipticLatitude(T)
	return eclipticToEquatorial(lambda, beta, obliquity(T))
}

// MoonHorizontal returns the Moon's altitude and azimuth for an observer at t.
func MoonHorizontal(t time.Time, obs Observer) Horizontal {
	return MoonEquatorial(t).ToHorizontal(obs, t)
}

// MoonIllumination returns the illuminated fraction of the Moon's disk in
// [0,1], computed from the Sun-Moon elongation in ecliptic longitude.
func MoonIllumination(t time.Time) float64 {
	T := JulianCenturies(JulianDate(t))
	elongation := normalizeDeg(moonEclipticLongitude(T) - sunEclipticLongitude(T))
	return (1 - math.Cos(degToRad(elongation))) / 2
}
