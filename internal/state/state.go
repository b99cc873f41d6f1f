// Package state owns the clock's shared state: the observer location, the
// latest celestial snapshot, the lunar phase, and the alarm. All derived
// state is recomputed on each tick in dependency order; consumers observe
// immutable snapshot values.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-skyclock/internal/alarm"
	"github.com/litescript/ls-skyclock/internal/almanac"
	"github.com/litescript/ls-skyclock/internal/astro"
	"github.com/litescript/ls-skyclock/internal/geoloc"
	"github.com/litescript/ls-skyclock/internal/logging"
	"github.com/litescript/ls-skyclock/internal/moonphase"
	"github.com/litescript/ls-skyclock/internal/sky"
)

// Snapshot is an immutable view of the clock state after a tick.
type Snapshot struct {
	Now time.Time

	// Location
	Observer astro.Observer
	Located  bool
	Advisory string // non-fatal location advisory, empty when clean

	// Derived celestial state
	Celestial almanac.Snapshot
	Phase     moonphase.State
	Sky       sky.State

	// Alarm
	Alarm       alarm.Status
	AlarmTarget time.Time // zero when unset
	AlarmRang   bool      // true on the tick the alarm started ringing
}

// Manager recomputes and serves the clock state. The 1 Hz tick drives
// recomputation; the location is written once by the acquisition goroutine.
type Manager struct {
	mu sync.RWMutex

	provider  almanac.Provider
	scheduler *alarm.Scheduler
	log       *logging.Logger

	obs      astro.Observer
	located  bool
	advisory string

	now       time.Time
	celestial almanac.Snapshot
	phase     moonphase.State
	skyState  sky.State
	rang      bool
}

// NewManager creates a manager around its collaborators.
func NewManager(provider almanac.Provider, scheduler *alarm.Scheduler, log *logging.Logger) *Manager {
	return &Manager{
		provider:  provider,
		scheduler: scheduler,
		log:       log,
	}
}

// SetLocation installs the acquired (or fallback) location and recomputes
// the derived state for it immediately.
func (m *Manager) SetLocation(res geoloc.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.obs = astro.Observer{LatDeg: res.Point.Latitude, LonDeg: res.Point.Longitude}
	m.located = true
	m.advisory = res.Advisory
	m.scheduler.SetLocation(m.obs)

	if res.Fallback {
		m.log.Warn("Location fallback in effect: %s", res.Advisory)
	} else {
		m.log.Info("Location acquired: %.4f, %.4f", m.obs.LatDeg, m.obs.LonDeg)
	}

	if !m.now.IsZero() {
		m.recompute(m.now)
	}
}

// Located reports whether a location (acquired or fallback) is installed.
func (m *Manager) Located() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.located
}

// Tick advances the clock to now, recomputing the celestial snapshot, the
// lunar phase, and the alarm check, in that order. Returns the resulting
// snapshot.
func (m *Manager) Tick(now time.Time) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = now
	m.rang = false

	if m.located {
		m.recompute(now)
		m.rang = m.scheduler.Tick(now)
	}
	// Phase depends only on time, not location.
	m.phase = moonphase.Compute(now)

	return m.snapshotLocked()
}

// recompute refreshes location-dependent derived state. Caller holds mu.
func (m *Manager) recompute(now time.Time) {
	m.celestial = m.provider.Compute(now, m.obs)
	m.skyState = sky.Classify(m.celestial.Sun.Alt)
}

// Snapshot returns the latest computed state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	target, _ := m.scheduler.Target()
	return Snapshot{
		Now:         m.now,
		Observer:    m.obs,
		Located:     m.located,
		Advisory:    m.advisory,
		Celestial:   m.celestial,
		Phase:       m.phase,
		Sky:         m.skyState,
		Alarm:       m.scheduler.Status(),
		AlarmTarget: target,
		AlarmRang:   m.rang,
	}
}

// ArmAlarm arms the sunrise alarm against the current snapshot.
func (m *Manager) ArmAlarm(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scheduler.Arm(m.celestial, now)
}

// DismissAlarm silences a ringing alarm; the scheduler re-arms itself for
// the next sunrise.
func (m *Manager) DismissAlarm(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduler.Dismiss(now)
}

// ClearAlarm disarms the alarm entirely.
func (m *Manager) ClearAlarm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduler.Clear()
}

// RestoreAlarm rehydrates a persisted alarm target at startup.
func (m *Manager) RestoreAlarm(target time.Time, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduler.Restore(target, now)
}
