package astro

import (
	"math"
	"time"
)

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
}

// Equatorial represents geocentric equatorial coordinates in radians.
type Equatorial struct {
	RA  float64 // Right ascension, radians [0, 2π)
	Dec float64 // Declination, radians [-π/2, π/2]
}

// Horizontal represents observer-relative horizontal coordinates in radians.
//
// Azimuth follows the convention used throughout the dial: 0 = south,
// positive toward the west. Altitude is measured from the horizon,
// zenith at +π/2.
type Horizontal struct {
	Alt float64 // Altitude, radians
	Az  float64 // Azimuth, radians (0 = south, westward positive)
}

// ToHorizontal converts equatorial coordinates to horizontal coordinates
// for a given observer and time.
func (eq Equatorial) ToHorizontal(obs Observer, t time.Time) Horizontal {
	lat := degToRad(obs.LatDeg)
	lst := degToRad(LocalSiderealTime(t, obs.LonDeg))

	// Hour angle
	ha := lst - eq.RA

	sinAlt := math.Sin(eq.Dec)*math.Sin(lat) + math.Cos(eq.Dec)*math.Cos(lat)*math.Cos(ha)
	// Clamp for numerical safety near the zenith
	if sinAlt > 1 {
		sinAlt = 1
	} else if sinAlt < -1 {
		sinAlt = -1
	}
	alt := math.Asin(sinAlt)

	az := math.Atan2(math.Sin(ha), math.Cos(ha)*math.Sin(lat)-math.Tan(eq.Dec)*math.Cos(lat))

	return Horizontal{Alt: alt, Az: az}
}

// ParallacticAngle returns the parallactic angle q in radians for a body at
// the given equatorial position: the rotation between celestial north and
// the observer's local vertical as seen at the body.
func ParallacticAngle(eq Equatorial, obs Observer, t time.Time) float64 {
	lat := degToRad(obs.LatDeg)
	lst := degToRad(LocalSiderealTime(t, obs.LonDeg))
	ha := lst - eq.RA

	return math.Atan2(math.Sin(ha),
		math.Tan(lat)*math.Cos(eq.Dec)-math.Sin(eq.Dec)*math.Cos(ha))
}

// eclipticToEquatorial converts ecliptic coordinates (longitude and latitude
// in degrees) to equatorial coordinates given the obliquity in degrees.
func eclipticToEquatorial(lonDeg, latDeg, obliquityDeg float64) Equatorial {
	lam := degToRad(lonDeg)
	bet := degToRad(latDeg)
	eps := degToRad(obliquityDeg)

	sinDec := math.Sin(bet)*math.Cos(eps) + math.Cos(bet)*math.Sin(eps)*math.Sin(lam)
	dec := math.Asin(sinDec)

	ra := math.Atan2(math.Sin(lam)*math.Cos(eps)-math.Tan(bet)*math.Sin(eps), math.Cos(lam))
	if ra < 0 {
		ra += 2 * math.Pi
	}

	return Equatorial{RA: ra, Dec: dec}
}

// obliquity computes the mean obliquity of the ecliptic in degrees.
func obliquity(T float64) float64 {
	return 23.439291111 - 0.013004167*T - 0.00000164*T*T + 0.000000504*T*T*T
}
