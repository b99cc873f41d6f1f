// Package astro provides the coordinate transformations and low-precision
// solar/lunar ephemeris used by the clock.
package astro

import (
	"math"
	"time"
)

// JulianDate converts a time to a Julian Date.
// Millisecond resolution is plenty for a once-per-second clock.
func JulianDate(t time.Time) float64 {
	return 2440587.5 + float64(t.UnixMilli())/86400000.0
}

// JulianCenturies returns Julian centuries since J2000.0 for a Julian Date.
func JulianCenturies(jd float64) float64 {
	return (jd - 2451545.0) / 36525.0
}

// GreenwichMeanSiderealTime calculates GMST in degrees for a given UTC time.
// Uses the IAU 1982 formula based on Julian Date.
func GreenwichMeanSiderealTime(t time.Time) float64 {
	jd := JulianDate(t)
	T := JulianCenturies(jd)

	gmst := 280.46061837 +
		360.98564736629*(jd-2451545.0) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return normalizeDeg(gmst)
}

// LocalSiderealTime calculates the Local Sidereal Time in degrees for a
// given UTC time and observer longitude (east positive).
func LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	return normalizeDeg(GreenwichMeanSiderealTime(t) + lonDeg)
}

// normalizeDeg wraps an angle to [0, 360) degrees.
func normalizeDeg(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
