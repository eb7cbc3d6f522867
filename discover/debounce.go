package discover

import (
	"sync"
	"time"
)

// DefaultDebounce is the pause after the last keystroke before a search is issued
const DefaultDebounce = 500 * time.Millisecond

// Debouncer is a rearmable single-shot timer. Every Trigger restarts the delay,
// so fn runs once, after the last trigger of a burst.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer that calls fn delay after the last Trigger
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger (re)arms the timer, discarding any pending run
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := gen == d.gen && !d.stopped
		d.mu.Unlock()

		// A timer that fired while being rearmed must not run
		if current {
			d.fn()
		}
	})
}

// Stop cancels any pending run. The debouncer cannot be triggered again.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
