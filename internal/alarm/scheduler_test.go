package alarm

import (
	"testing"
	"time"

	"github.com/litescript/ls-skyclock/internal/almanac"
	"github.com/litescript/ls-skyclock/internal/astro"
	"github.com/litescript/ls-skyclock/internal/logging"
)

// fakeProvider returns canned sunrises keyed by local calendar day.
type fakeProvider struct {
	sunrises map[string]time.Time
}

func (f *fakeProvider) Compute(t time.Time, _ astro.Observer) almanac.Snapshot {
	return almanac.Snapshot{Sunrise: f.sunrises[t.Format("2006-01-02")]}
}

type fakeStore struct {
	saved   []time.Time
	cleared int
}

func (f *fakeStore) SaveAlarm(target time.Time) error {
	f.saved = append(f.saved, target)
	return nil
}

func (f *fakeStore) ClearAlarm() error {
	f.cleared++
	return nil
}

type fakeTone struct {
	starts, stops int
}

func (f *fakeTone) Start() { f.starts++ }
func (f *fakeTone) Stop()  { f.stops++ }

var testObs = astro.Observer{LatDeg: 51.5, LonDeg: -0.13}

func day(d int, hh, mm, ss int) time.Time {
	return time.Date(2026, 8, d, hh, mm, ss, 0, time.UTC)
}

func newTestScheduler(p almanac.Provider) (*Scheduler, *fakeStore, *fakeTone) {
	st := &fakeStore{}
	tn := &fakeTone{}
	s := NewScheduler(p, st, tn, logging.Discard())
	s.SetLocation(testObs)
	return s, st, tn
}

func TestArmFutureSunrise(t *testing.T) {
	sunrise := day(27, 6, 12, 0)
	s, st, _ := newTestScheduler(&fakeProvider{})

	err := s.Arm(almanac.Snapshot{Sunrise: sunrise}, day(27, 5, 0, 0))
	if err != nil {
		t.Fatalf("Arm: %v", err)
	}

	if s.Status() != Armed {
		t.Errorf("status = %v, want Armed", s.Status())
	}
	target, ok := s.Target()
	if !ok || !target.Equal(sunrise) {
		t.Errorf("target = %v, want %v", target, sunrise)
	}
	if len(st.saved) != 1 || !st.saved[0].Equal(sunrise) {
		t.Errorf("persisted %v, want [%v]", st.saved, sunrise)
	}
}

func TestArmPastSunriseRollsToNextDay(t *testing.T) {
	todayRise := day(27, 6, 12, 0)
	tomorrowRise := day(28, 6, 13, 0)
	p := &fakeProvider{sunrises: map[string]time.Time{"2026-08-28": tomorrowRise}}
	s, _, _ := newTestScheduler(p)

	now := day(27, 9, 0, 0) // sunrise already happened
	if err := s.Arm(almanac.Snapshot{Sunrise: todayRise}, now); err != nil {
		t.Fatalf("Arm: %v", err)
	}

	target, _ := s.Target()
	if !target.Equal(tomorrowRise) {
		t.Errorf("target = %v, want tomorrow's sunrise %v", target, tomorrowRise)
	}
	if !target.After(now) {
		t.Error("armed target not strictly after now")
	}
}

func TestArmWithoutLocation(t *testing.T) {
	s := NewScheduler(&fakeProvider{}, &fakeStore{}, &fakeTone{}, logging.Discard())

	err := s.Arm(almanac.Snapshot{Sunrise: day(27, 6, 12, 0)}, day(27, 5, 0, 0))
	if err != ErrNoLocation {
		t.Errorf("err = %v, want ErrNoLocation", err)
	}
	if s.Status() != Unset {
		t.Errorf("status = %v, want Unset", s.Status())
	}
}

func TestArmPolarNight(t *testing.T) {
	s, _, _ := newTestScheduler(&fakeProvider{})

	err := s.Arm(almanac.Snapshot{}, day(27, 5, 0, 0))
	if err != ErrNoSunrise {
		t.Errorf("err = %v, want ErrNoSunrise", err)
	}
}

func TestTickExactMatch(t *testing.T) {
	sunrise := day(27, 6, 12, 34) // seconds are ignored by the match
	s, _, tn := newTestScheduler(&fakeProvider{})
	if err := s.Arm(almanac.Snapshot{Sunrise: sunrise}, day(27, 5, 0, 0)); err != nil {
		t.Fatalf("Arm: %v", err)
	}

	if s.Tick(day(27, 6, 11, 0)) {
		t.Error("rang a minute early")
	}
	if s.Tick(day(27, 6, 12, 30)) {
		t.Error("rang off the zero second")
	}
	if !s.Tick(day(27, 6, 12, 0)) {
		t.Fatal("did not ring at the target minute")
	}
	if s.Status() != Ringing {
		t.Errorf("status = %v, want Ringing", s.Status())
	}
	if tn.starts != 1 {
		t.Errorf("tone started %d times, want 1", tn.starts)
	}

	// Already ringing: further matching ticks must not re-trigger.
	if s.Tick(day(27, 6, 12, 0)) {
		t.Error("rang twice without an intervening dismiss")
	}
	if tn.starts != 1 {
		t.Errorf("tone restarted while ringing (%d starts)", tn.starts)
	}
}

func TestMissedTickSkips(t *testing.T) {
	sunrise := day(27, 6, 12, 0)
	s, _, _ := newTestScheduler(&fakeProvider{})
	if err := s.Arm(almanac.Snapshot{Sunrise: sunrise}, day(27, 5, 0, 0)); err != nil {
		t.Fatalf("Arm: %v", err)
	}

	// The clock jumps past the target (system sleep): no ring, no retry.
	if s.Tick(day(27, 6, 12, 1)) {
		t.Error("rang on a late tick")
	}
	if s.Tick(day(27, 6, 13, 0)) {
		t.Error("rang a minute after the target")
	}
	if s.Status() != Armed {
		t.Errorf("status = %v, want still Armed", s.Status())
	}
}

func TestDismissReschedules(t *testing.T) {
	todayRise := day(27, 6, 12, 0)
	tomorrowRise := day(28, 6, 13, 0)
	p := &fakeProvider{sunrises: map[string]time.Time{
		"2026-08-27": todayRise,
		"2026-08-28": tomorrowRise,
	}}
	s, st, tn := newTestScheduler(p)
	if err := s.Arm(almanac.Snapshot{Sunrise: todayRise}, day(27, 5, 0, 0)); err != nil {
		t.Fatalf("Arm: %v", err)
	}

	if !s.Tick(day(27, 6, 12, 0)) {
		t.Fatal("did not ring")
	}

	dismissedAt := day(27, 6, 12, 40)
	s.Dismiss(dismissedAt)

	if tn.stops != 1 {
		t.Errorf("tone stopped %d times, want 1", tn.stops)
	}
	if s.Status() != Armed {
		t.Fatalf("status after dismiss = %v, want Armed", s.Status())
	}
	target, _ := s.Target()
	if !target.After(dismissedAt) {
		t.Errorf("re-armed target %v not after dismissal %v", target, dismissedAt)
	}
	if !target.Equal(tomorrowRise) {
		t.Errorf("re-armed target = %v, want %v", target, tomorrowRise)
	}
	if len(st.saved) != 2 {
		t.Errorf("persisted %d targets, want 2", len(st.saved))
	}
}

func TestDismissOutsideRinging(t *testing.T) {
	s, _, tn := newTestScheduler(&fakeProvider{})
	s.Dismiss(day(27, 7, 0, 0))
	if s.Status() != Unset || tn.stops != 0 {
		t.Error("dismiss from Unset should be a no-op")
	}
}

func TestClearIdempotent(t *testing.T) {
	s, st, _ := newTestScheduler(&fakeProvider{})

	// Clear on an already-unset alarm: no-op, no persisted key touched.
	s.Clear()
	if st.cleared != 0 {
		t.Errorf("clear on Unset touched the store %d times", st.cleared)
	}

	if err := s.Arm(almanac.Snapshot{Sunrise: day(27, 6, 12, 0)}, day(27, 5, 0, 0)); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	s.Clear()
	if s.Status() != Unset {
		t.Errorf("status = %v, want Unset", s.Status())
	}
	if st.cleared != 1 {
		t.Errorf("store cleared %d times, want 1", st.cleared)
	}
	if _, ok := s.Target(); ok {
		t.Error("target still reported after clear")
	}
}

func TestClearWhileRinging(t *testing.T) {
	s, _, tn := newTestScheduler(&fakeProvider{})
	if err := s.Arm(almanac.Snapshot{Sunrise: day(27, 6, 12, 0)}, day(27, 5, 0, 0)); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	s.Tick(day(27, 6, 12, 0))

	s.Clear()
	if tn.stops != 1 {
		t.Errorf("tone stopped %d times, want 1", tn.stops)
	}
	if s.Status() != Unset {
		t.Errorf("status = %v, want Unset", s.Status())
	}
}

func TestRestore(t *testing.T) {
	now := day(27, 12, 0, 0)

	t.Run("future target", func(t *testing.T) {
		s, st, _ := newTestScheduler(&fakeProvider{})
		s.Restore(day(28, 6, 13, 0), now)
		if s.Status() != Armed {
			t.Errorf("status = %v, want Armed", s.Status())
		}
		if st.cleared != 0 {
			t.Error("restore of a future target should not clear the store")
		}
	})

	t.Run("stale target", func(t *testing.T) {
		s, st, _ := newTestScheduler(&fakeProvider{})
		s.Restore(day(27, 6, 12, 0), now)
		if s.Status() != Unset {
			t.Errorf("status = %v, want Unset", s.Status())
		}
		if st.cleared != 1 {
			t.Error("stale target should be cleared from the store")
		}
	})
}
