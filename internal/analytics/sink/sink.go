// Package sink holds the adapters that receive emitted analytics records: the
// server-side stand-ins for the tag manager's dataLayer.
package sink

import (
	"context"
	"errors"

	"leadengine/internal/analytics/events"
)

// ErrCircuitOpen is returned by a guarded sink while its breaker is open.
var ErrCircuitOpen = errors.New("sink circuit open")

// Sink is an append-only, order-preserving queue of records. Push must not
// reorder records relative to earlier Push calls.
type Sink interface {
	Push(ctx context.Context, record events.Event) error
}

// Nop discards every record. It is used when no queue is configured, the
// server equivalent of a page without the tag-manager snippet.
type Nop struct{}

func (Nop) Push(context.Context, events.Event) error { return nil }
