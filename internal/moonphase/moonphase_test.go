package moonphase

import (
	"math"
	"testing"
	"time"
)

func TestComputeAtEpoch(t *testing.T) {
	got := Compute(time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC))
	if got.Phase != NewMoon {
		t.Errorf("phase at reference new moon = %v, want New Moon", got.Phase)
	}
	if got.AgeDays > 1e-9 {
		t.Errorf("age at reference new moon = %v, want ~0", got.AgeDays)
	}
}

func TestComputeBeforeEpoch(t *testing.T) {
	// Instants before the reference new moon must still yield a
	// non-negative age.
	got := Compute(time.Date(1999, 12, 1, 0, 0, 0, 0, time.UTC))
	if got.AgeDays < 0 || got.AgeDays >= SynodicMonth {
		t.Errorf("age before epoch = %v, out of [0, %v)", got.AgeDays, SynodicMonth)
	}
	if got.Fraction < 0 || got.Fraction >= 1 {
		t.Errorf("fraction before epoch = %v, out of [0,1)", got.Fraction)
	}
}

func TestComputeFractionRange(t *testing.T) {
	// Hourly samples over several months, spanning the epoch.
	start := time.Date(1999, 11, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24*120; h += 7 {
		when := start.Add(time.Duration(h) * time.Hour)
		got := Compute(when)
		if got.Fraction < 0 || got.Fraction >= 1 {
			t.Fatalf("fraction at %v = %v, out of [0,1)", when, got.Fraction)
		}
	}
}

func TestComputePeriodicity(t *testing.T) {
	// One synodic month later the phase repeats.
	base := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	shift := time.Duration(SynodicMonth * 24 * float64(time.Hour))

	a := Compute(base)
	b := Compute(base.Add(shift))

	if a.Phase != b.Phase {
		t.Errorf("phase not periodic: %v vs %v", a.Phase, b.Phase)
	}
	if math.Abs(a.Fraction-b.Fraction) > 1e-6 {
		t.Errorf("fraction not periodic: %v vs %v", a.Fraction, b.Fraction)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		want     Phase
	}{
		{"cycle start", 0, NewMoon},
		{"just under new boundary", 0.0299, NewMoon},
		{"crescent start", 0.03, WaxingCrescent},
		{"first quarter start", 0.23, FirstQuarter},
		{"waxing gibbous start", 0.27, WaxingGibbous},
		{"full start", 0.48, FullMoon},
		{"exact half", 0.50, FullMoon},
		{"waning gibbous start", 0.52, WaningGibbous},
		{"third quarter start", 0.73, ThirdQuarter},
		{"waning crescent start", 0.77, WaningCrescent},
		{"wrap to new", 0.97, NewMoon},
		{"cycle end", 0.9999, NewMoon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.fraction); got != tt.want {
				t.Errorf("classify(%v) = %v, want %v", tt.fraction, got, tt.want)
			}
		})
	}
}

func TestKnownFullMoon(t *testing.T) {
	// 2024-04-23 23:49 UTC was a full moon.
	got := Compute(time.Date(2024, 4, 23, 23, 49, 0, 0, time.UTC))
	if got.Phase != FullMoon {
		t.Errorf("phase at known full moon = %v (fraction %v), want Full Moon",
			got.Phase, got.Fraction)
	}
}
