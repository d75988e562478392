// Package timer provides a cancellable, owner-disposed timer for UI-style
// debounce flows (hide-after-blur, delayed dismissals).
//
// A Timer holds at most one pending callback. Scheduling replaces the pending
// callback, Cancel drops it, and Dispose drops it and refuses all later
// schedules, so nothing fires against a torn-down owner.
package timer

import (
	"sync"
	"time"
)

// Stopper is the subset of *time.Timer the Timer needs.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it.
type AfterFunc func(d time.Duration, f func()) Stopper

func realAfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Timer is safe for concurrent use.
type Timer struct {
	mu        sync.Mutex
	afterFunc AfterFunc
	pending   Stopper
	gen       uint64
	disposed  bool
}

// Option configures a Timer.
type Option func(*Timer)

// WithAfterFunc replaces the scheduler, typically with a Manual in tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(t *Timer) {
		if fn != nil {
			t.afterFunc = fn
		}
	}
}

// New creates an idle timer.
func New(opts ...Option) *Timer {
	t := &Timer{afterFunc: realAfterFunc}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Schedule runs fn after d, replacing any pending callback.
// Returns false if the timer was disposed.
func (t *Timer) Schedule(d time.Duration, fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return false
	}
	t.stopLocked()
	t.gen++
	gen := t.gen
	t.pending = t.afterFunc(d, func() {
		t.mu.Lock()
		// A stale generation means the callback was cancelled or replaced
		// after the underlying timer already fired.
		if t.disposed || gen != t.gen || t.pending == nil {
			t.mu.Unlock()
			return
		}
		t.pending = nil
		t.mu.Unlock()
		fn()
	})
	return true
}

// Cancel drops the pending callback. Returns true if one was pending.
func (t *Timer) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopLocked()
}

// Pending reports whether a callback is scheduled and not yet run.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

// Dispose cancels any pending callback and disables the timer for good.
func (t *Timer) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.disposed = true
}

// stopLocked must be called with t.mu held.
func (t *Timer) stopLocked() bool {
	if t.pending == nil {
		return false
	}
	t.pending.Stop()
	t.pending = nil
	t.gen++
	return true
}
