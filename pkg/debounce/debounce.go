// Package debounce provides a trailing debouncer: of all calls made within
// a quiet interval, only the last one runs, once the interval has passed
// without a newer call.
package debounce

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Debouncer owns a single timer. Each Call cancels the pending function
// and reschedules the new one. Functions run on the clock's timer
// goroutine.
type Debouncer struct {
	mu sync.Mutex

	clock    clock.Clock
	interval time.Duration

	timer   *clock.Timer
	pending func()
	// generation is bumped on every Call, Stop and Flush. A timer whose
	// generation is stale when it fires does nothing, which covers the
	// case where Stop lost the race against an already-fired timer.
	generation uint64
	// running counts functions started by the timer that have not
	// returned. idle is signaled, under mu, when it drops to zero.
	running int
	idle    *sync.Cond
}

// New creates a debouncer with the given quiet interval. A nil clock uses
// the wall clock.
func New(interval time.Duration, clk clock.Clock) *Debouncer {
	if clk == nil {
		clk = clock.New()
	}
	d := &Debouncer{
		clock:    clk,
		interval: interval,
	}
	d.idle = sync.NewCond(&d.mu)
	return d
}

// Call schedules fn to run after the quiet interval, replacing any
// function scheduled before it.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelLocked()
	gen := d.generation
	d.pending = fn
	d.timer = d.clock.AfterFunc(d.interval, func() {
		d.fire(gen)
	})
}

// Stop cancels the pending function, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelLocked()
}

// Flush runs the pending function now, on the caller's goroutine, after
// waiting for any function the timer has already started. It returns false
// when nothing was pending. Flush must not be called from a debounced
// function.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	d.cancelLocked()
	for d.running > 0 {
		d.idle.Wait()
	}
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.generation || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.running++
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.running--
		if d.running == 0 {
			d.idle.Broadcast()
		}
		d.mu.Unlock()
	}()
	fn()
}

func (d *Debouncer) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.generation++
}
