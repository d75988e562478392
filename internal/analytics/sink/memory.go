package sink

import (
	"context"
	"sync"

	"leadengine/internal/analytics/events"
)

// Queue is an in-memory dataLayer. Records are kept in push order and never
// removed; it backs tests and the development debug endpoint.
type Queue struct {
	mu      sync.RWMutex
	records []events.Event
	limit   int
}

// NewQueue creates a queue. A positive limit keeps only the newest records,
// so a long-running dev server does not grow without bound.
func NewQueue(limit int) *Queue {
	return &Queue{limit: limit}
}

func (q *Queue) Push(_ context.Context, record events.Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.records = append(q.records, record)
	if q.limit > 0 && len(q.records) > q.limit {
		q.records = append([]events.Event(nil), q.records[len(q.records)-q.limit:]...)
	}
	return nil
}

// Records returns a copy of the queue in push order.
func (q *Queue) Records() []events.Event {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return append([]events.Event{}, q.records...)
}

// Names returns the event names in push order.
func (q *Queue) Names() []string {
	q.mu.RLock()
	defer q.mu.RUnlock()
	names := make([]string, len(q.records))
	for i, r := range q.records {
		names[i] = r.Name()
	}
	return names
}

// Len returns the number of queued records.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.records)
}
