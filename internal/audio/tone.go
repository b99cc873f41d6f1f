// Package audio produces the alarm tone. Terminals have no synthesizer, so
// the tone is a train of BEL pulses whose rate ramps in and out, which reads
// as a rising and falling alert on most terminal emulators.
package audio

import (
	"io"
	"os"
	"sync"
	"time"
)

const (
	rampDuration = 500 * time.Millisecond
	pulseSlow    = 400 * time.Millisecond // pulse interval at the ramp edges
	pulseFast    = 120 * time.Millisecond // steady-state pulse interval
)

// Bell writes BEL pulses to a terminal. Start while a tone is already
// playing replaces it; the pulse goroutines never stack.
type Bell struct {
	mu   sync.Mutex
	w    io.Writer
	stop chan struct{}

	// Overridable for tests.
	ramp       time.Duration
	slow, fast time.Duration
}

// NewBell creates a bell writing to w; pass nil for stdout.
func NewBell(w io.Writer) *Bell {
	if w == nil {
		w = os.Stdout
	}
	return &Bell{
		w:    w,
		ramp: rampDuration,
		slow: pulseSlow,
		fast: pulseFast,
	}
}

// Start begins the tone, ramping the pulse rate in over ~0.5s. Any tone
// already playing is replaced, not stacked.
func (b *Bell) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stop != nil {
		close(b.stop)
	}
	b.stop = make(chan struct{})
	go b.pulse(b.stop)
}

// Stop ends the tone, ramping the pulse rate back out over ~0.5s before
// going silent. Stopping an idle bell is a no-op.
func (b *Bell) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stop == nil {
		return
	}
	close(b.stop)
	b.stop = nil
}

// pulse emits BEL at an interval that ramps from slow to fast, holds, and on
// stop ramps back to slow before exiting.
func (b *Bell) pulse(stop chan struct{}) {
	started := time.Now()

	for {
		select {
		case <-stop:
			b.rampOut()
			return
		default:
		}

		b.ring()

		interval := b.fast
		if since := time.Since(started); since < b.ramp {
			frac := float64(since) / float64(b.ramp)
			interval = b.slow - time.Duration(frac*float64(b.slow-b.fast))
		}

		select {
		case <-stop:
			b.rampOut()
			return
		case <-time.After(interval):
		}
	}
}

func (b *Bell) rampOut() {
	started := time.Now()
	for {
		since := time.Since(started)
		if since >= b.ramp {
			return
		}
		frac := float64(since) / float64(b.ramp)
		interval := b.fast + time.Duration(frac*float64(b.slow-b.fast))
		time.Sleep(interval)
		b.ring()
	}
}

func (b *Bell) ring() {
	b.mu.Lock()
	_, _ = b.w.Write([]byte("\a"))
	b.mu.Unlock()
}
