// Package debounce provides a trailing-edge debouncer with explicit timer
// ownership: at most one timer is outstanding per Debouncer, every new input
// cancels and replaces it, and Close releases it for good.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid calls to Trigger and applies only the latest
// value once no new value has arrived for the configured delay. There is no
// leading-edge application.
//
// The apply function runs on the timer's goroutine. Callers that need the
// value on their own event loop should forward it over a channel.
type Debouncer[T any] struct {
	mu         sync.Mutex
	delay      time.Duration
	apply      func(T)
	timer      *time.Timer
	pending    T
	hasPending bool
	generation uint64
	closed     bool
}

// New returns a Debouncer that applies values with fn after delay.
// A non-positive delay applies every value synchronously.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		apply: fn,
	}
}

// Delay returns the quiet period.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Trigger records v as the latest value and restarts the quiet period.
// Calls after Close are ignored.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.stopLocked()

	if d.delay <= 0 {
		d.mu.Unlock()
		d.apply(v)
		return
	}

	d.generation++
	gen := d.generation
	d.pending = v
	d.hasPending = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
	d.mu.Unlock()
}

// fire applies the pending value if no newer input or cancellation
// happened since the timer for gen was armed.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.closed || gen != d.generation || !d.hasPending {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.clearLocked()
	d.mu.Unlock()

	d.apply(v)
}

// Flush applies the pending value immediately and reports whether there was one.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.closed || !d.hasPending {
		d.mu.Unlock()
		return false
	}
	v := d.pending
	d.stopLocked()
	d.mu.Unlock()

	d.apply(v)
	return true
}

// Cancel drops the pending value without applying it.
func (d *Debouncer[T]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	had := d.hasPending
	d.stopLocked()
	return had
}

// Pending reports whether a value is waiting for its quiet period to end.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasPending
}

// Close cancels any pending value and disables the Debouncer. A timer that
// already fired but has not yet taken the lock will find it closed and do
// nothing.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.closed = true
}

// stopLocked stops the outstanding timer and invalidates its generation.
// Must be called with mu held.
func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	d.clearLocked()
}

// clearLocked releases the timer and the pending value. Must be called with mu held.
func (d *Debouncer[T]) clearLocked() {
	var zero T
	d.timer = nil
	d.pending = zero
	d.hasPending = false
}
