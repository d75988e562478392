package timer

import (
	"sync"
	"time"
)

// Manual is a deterministic scheduler for tests. Callbacks run only when
// Advance moves the manual clock past their deadline.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	entries []*manualEntry
}

type manualEntry struct {
	owner    *Manual
	deadline time.Duration
	fn       func()
	stopped  bool
}

func (e *manualEntry) Stop() bool {
	e.owner.mu.Lock()
	defer e.owner.mu.Unlock()
	was := !e.stopped
	e.stopped = true
	return was
}

// NewManual creates a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc satisfies the AfterFunc signature.
func (m *Manual) AfterFunc(d time.Duration, f func()) Stopper {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := &manualEntry{owner: m, deadline: m.now + d, fn: f}
	m.entries = append(m.entries, e)
	return e
}

// Advance moves the clock forward and runs every due, unstopped callback in
// deadline order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualEntry
	remaining := m.entries[:0]
	for _, e := range m.entries {
		switch {
		case e.stopped:
		case e.deadline <= m.now:
			e.stopped = true
			due = append(due, e)
		default:
			remaining = append(remaining, e)
		}
	}
	m.entries = remaining
	m.mu.Unlock()

	for i := 1; i < len(due); i++ {
		for j := i; j > 0 && due[j].deadline < due[j-1].deadline; j-- {
			due[j], due[j-1] = due[j-1], due[j]
		}
	}
	for _, e := range due {
		e.fn()
	}
}
