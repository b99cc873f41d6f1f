package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want float64
	}{
		{"unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"J2000", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"half day", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC), 2451545.5},
		{"modern date", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2460310.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDate(tt.time)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("JulianDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJulianCenturies(t *testing.T) {
	if got := JulianCenturies(2451545.0); got != 0 {
		t.Errorf("JulianCenturies(J2000) = %v, want 0", got)
	}
	// One Julian century after J2000
	if got := JulianCenturies(2451545.0 + 36525); math.Abs(got-1) > 1e-12 {
		t.Errorf("JulianCenturies(J2000+36525d) = %v, want 1", got)
	}
}

func TestGreenwichMeanSiderealTime(t *testing.T) {
	// GMST at J2000.0 is 280.46062 degrees (18h41m50.5s).
	got := GreenwichMeanSiderealTime(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(got-280.46062) > 0.001 {
		t.Errorf("GMST at J2000 = %v, want ~280.46062", got)
	}
}

func TestLocalSiderealTimeWraps(t *testing.T) {
	// LST must stay in [0, 360) for any longitude.
	when := time.Date(2024, 6, 1, 3, 30, 0, 0, time.UTC)
	for _, lon := range []float64{-180, -75.5, 0, 120.25, 179.9} {
		lst := LocalSiderealTime(when, lon)
		if lst < 0 || lst >= 360 {
			t.Errorf("LST(lon=%v) = %v, out of [0,360)", lon, lst)
		}
	}
}

func TestNormalizeDeg(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-725, 355},
	}

	for _, tt := range tests {
		if got := normalizeDeg(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeDeg(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
