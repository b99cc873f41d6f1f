// Package facts serves the dial's tap-a-body trivia callouts.
package facts

import (
	"math/rand"
	"time"
)

// Body identifies which celestial body a fact belongs to.
type Body int

const (
	Sun Body = iota
	Moon
)

// String returns the display name of the body.
func (b Body) String() string {
	switch b {
	case Sun:
		return "Sun"
	case Moon:
		return "Moon"
	default:
		return "Unknown"
	}
}

// DisplayDuration is how long a picked fact stays on screen.
const DisplayDuration = 4 * time.Second

var sunFacts = []string{
	"The Sun holds 99.86% of the solar system's mass.",
	"Light from the Sun takes about 8 minutes 20 seconds to reach Earth.",
	"The Sun's core burns at around 15 million degrees Celsius.",
	"About 1.3 million Earths would fit inside the Sun.",
	"The Sun completes a rotation roughly every 27 days at its equator.",
	"Solar noon rarely falls at 12:00; the equation of time shifts it by up to 16 minutes.",
}

var moonFacts = []string{
	"The Moon drifts about 3.8 cm farther from Earth every year.",
	"A lunar day lasts about 29.5 Earth days, one synodic month.",
	"The Moon always shows Earth the same face; its rotation is tidally locked.",
	"Moonlight is sunlight reflected off a surface as dark as worn asphalt.",
	"The Moon's gravity is about one sixth of Earth's.",
	"Lunar phases repeat on a 29.530588853-day cycle.",
}

// Picker holds one active fact. Each new pick supersedes the previous one and
// bumps a generation counter so a stale expiry timer cannot clear a newer
// fact.
type Picker struct {
	rng *rand.Rand

	active string
	body   Body
	shown  bool
	gen    int
}

// NewPicker creates a picker with its own random source.
func NewPicker() *Picker {
	return &Picker{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Pick selects a uniform-random fact for the body and makes it the single
// active fact. Returns the fact text and the generation to hand to the
// expiry timer.
func (p *Picker) Pick(b Body) (string, int) {
	var pool []string
	switch b {
	case Sun:
		pool = sunFacts
	default:
		pool = moonFacts
	}

	p.active = pool[p.rng.Intn(len(pool))]
	p.body = b
	p.shown = true
	p.gen++
	return p.active, p.gen
}

// Active returns the currently displayed fact, its body, and whether one is
// showing.
func (p *Picker) Active() (string, Body, bool) {
	return p.active, p.body, p.shown
}

// Expire clears the active fact if gen still identifies it. An expiry for a
// superseded fact is ignored. Reports whether the display changed.
func (p *Picker) Expire(gen int) bool {
	if !p.shown || gen != p.gen {
		return false
	}
	p.active = ""
	p.shown = false
	return true
}
