// Package alarm implements the true-sunrise alarm state machine.
package alarm

import (
	"errors"
	"time"

	"github.com/litescript/ls-skyclock/internal/almanac"
	"github.com/litescript/ls-skyclock/internal/astro"
	"github.com/litescript/ls-skyclock/internal/logging"
)

// Status is the alarm's lifecycle state.
type Status int

const (
	Unset Status = iota
	Armed
	Ringing
)

// String returns the display name of the status.
func (s Status) String() string {
	switch s {
	case Unset:
		return "Unset"
	case Armed:
		return "Armed"
	case Ringing:
		return "Ringing"
	default:
		return "Unknown"
	}
}

// Store persists the armed target across runs.
type Store interface {
	SaveAlarm(target time.Time) error
	ClearAlarm() error
}

// Tone is the audio collaborator. Start while already started replaces the
// running tone rather than stacking a second one.
type Tone interface {
	Start()
	Stop()
}

// Errors returned by Arm.
var (
	ErrNoLocation = errors.New("alarm: no known location")
	ErrNoSunrise  = errors.New("alarm: no sunrise at this location")
)

// Scheduler drives the Unset/Armed/Ringing state machine. It is owned by a
// single goroutine and ticked once per second; no internal locking.
type Scheduler struct {
	status Status
	target time.Time

	provider almanac.Provider
	store    Store
	tone     Tone
	log      *logging.Logger

	obs     astro.Observer
	located bool
}

// NewScheduler creates a scheduler with its collaborators injected.
func NewScheduler(provider almanac.Provider, store Store, tone Tone, log *logging.Logger) *Scheduler {
	return &Scheduler{
		provider: provider,
		store:    store,
		tone:     tone,
		log:      log,
	}
}

// SetLocation records the observer location used for sunrise recomputation.
func (s *Scheduler) SetLocation(obs astro.Observer) {
	s.obs = obs
	s.located = true
}

// Status returns the current lifecycle state.
func (s *Scheduler) Status() Status {
	return s.status
}

// Target returns the armed target and whether one is set.
func (s *Scheduler) Target() (time.Time, bool) {
	if s.status == Unset {
		return time.Time{}, false
	}
	return s.target, true
}

// Restore rehydrates a persisted target at startup. A target already in the
// past is stale (the alarm it described has come and gone) and is dropped
// along with its persisted key.
func (s *Scheduler) Restore(target time.Time, now time.Time) {
	if !target.After(now) {
		s.log.Info("Dropping stale persisted alarm target %v", target)
		if err := s.store.ClearAlarm(); err != nil {
			s.log.Warn("Clearing stale alarm target: %v", err)
		}
		return
	}
	s.status = Armed
	s.target = target
	s.log.Info("Restored alarm for %v", target.Format(time.Kitchen))
}

// Arm sets the alarm to the snapshot's sunrise. If that sunrise has already
// passed, the next day's sunrise is computed and used instead, so the armed
// target is never in the past. Arming supersedes any previous target.
func (s *Scheduler) Arm(snap almanac.Snapshot, now time.Time) error {
	if !s.located {
		return ErrNoLocation
	}

	candidate := snap.Sunrise
	if candidate.IsZero() {
		return ErrNoSunrise
	}
	if candidate.Before(now) {
		next := s.provider.Compute(now.AddDate(0, 0, 1), s.obs)
		candidate = next.Sunrise
		if candidate.IsZero() {
			return ErrNoSunrise
		}
	}

	s.status = Armed
	s.target = candidate
	if err := s.store.SaveAlarm(candidate); err != nil {
		s.log.Warn("Persisting alarm target: %v", err)
	}
	s.log.Info("Alarm armed for %v", candidate.Format(time.Kitchen))
	return nil
}

// Tick checks the wall clock against the armed target. The match is exact:
// same hour, same minute, second zero. A tick missed at that instant (system
// sleep, suspended process) skips the alarm for the day; there is no
// catch-up window.
//
// Returns true when the alarm transitioned to Ringing on this tick.
func (s *Scheduler) Tick(now time.Time) bool {
	if s.status != Armed {
		return false
	}
	if now.Hour() != s.target.Hour() || now.Minute() != s.target.Minute() || now.Second() != 0 {
		return false
	}

	s.status = Ringing
	s.tone.Start()
	s.log.Info("Alarm ringing")
	return true
}

// Dismiss silences a ringing alarm and immediately re-arms it for the next
// sunrise. Today's sunrise has just fired, so Arm's past-sunrise path picks
// tomorrow's; the alarm is self-rescheduling, never silently lost.
// Dismiss from any other state is a no-op.
func (s *Scheduler) Dismiss(now time.Time) {
	if s.status != Ringing {
		return
	}

	s.tone.Stop()
	s.status = Unset

	snap := s.provider.Compute(now, s.obs)
	if err := s.Arm(snap, now); err != nil {
		s.log.Warn("Re-arming after dismiss: %v", err)
	}
}

// Clear disarms the alarm and removes the persisted target. Clearing an
// already-unset alarm is a no-op and leaves no persisted key behind.
func (s *Scheduler) Clear() {
	if s.status == Ringing {
		s.tone.Stop()
	}
	if s.status == Unset {
		return
	}

	s.status = Unset
	s.target = time.Time{}
	if err := s.store.ClearAlarm(); err != nil {
		s.log.Warn("Clearing alarm target: %v", err)
	}
	s.log.Info("Alarm cleared")
}
