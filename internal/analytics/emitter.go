// Package analytics turns built events into enriched records on the sink.
package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"leadengine/internal/analytics/events"
	"leadengine/internal/analytics/sink"
	id "leadengine/pkg/domain"
	"leadengine/pkg/requestcontext"
)

// TimestampLayout matches JavaScript's Date.toISOString, which the tag-manager
// side already parses.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// emitStripes is the number of push locks. Records of one visitor always share
// a lock, so they reach the sink in call order; other visitors' records do not
// queue behind a slow synchronous push.
const emitStripes = 64

// Emitter is the single side-effecting step between builders and the sink. It
// stamps each record with time and page context, then pushes it. Per visitor,
// records are pushed in call order.
// Emit never fails the caller: sink errors are logged and counted.
type Emitter struct {
	stripes [emitStripes]sync.Mutex
	sink    sink.Sink
	logger  *slog.Logger
	metrics *Metrics
	clock   func() time.Time
	debug   bool
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithLogger sets a logger for sink failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Emitter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(e *Emitter) {
		e.metrics = m
	}
}

// WithClock sets the clock used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Emitter) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithDebugLog also writes each record to the logger. Enabled in development.
func WithDebugLog(enabled bool) Option {
	return func(e *Emitter) {
		e.debug = enabled
	}
}

// NewEmitter creates an emitter. A nil sink behaves as sink.Nop.
func NewEmitter(s sink.Sink, opts ...Option) *Emitter {
	if s == nil {
		s = sink.Nop{}
	}
	e := &Emitter{
		sink:   s,
		logger: slog.New(slog.DiscardHandler),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit enriches and pushes one record.
func (e *Emitter) Emit(ctx context.Context, event events.Event) {
	if e == nil || event == nil {
		return
	}
	record := event.Clone()
	page := requestcontext.PageFrom(ctx)
	name := record.Name()

	mu := e.lockFor(requestcontext.VisitorID(ctx))
	mu.Lock()
	defer mu.Unlock()

	record[events.KeyTimestamp] = e.clock().UTC().Format(TimestampLayout)
	record[events.KeyPageURL] = page.URL
	record[events.KeyPageTitle] = page.Title

	if e.debug {
		e.logger.DebugContext(ctx, "analytics event", "event", name, "record", map[string]any(record))
	}

	if err := e.push(ctx, record); err != nil {
		e.metrics.IncDropped(name)
		e.logger.WarnContext(ctx, "analytics sink rejected event",
			"event", name,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return
	}
	e.metrics.IncEmitted(name)
}

// lockFor picks the push lock of a visitor. Requests without a visitor share
// one lock.
func (e *Emitter) lockFor(visitor id.VisitorID) *sync.Mutex {
	return &e.stripes[int(visitor[len(visitor)-1])%emitStripes]
}

// EmitMaybe emits the event if the gated builder produced one.
func (e *Emitter) EmitMaybe(ctx context.Context, m events.Maybe) bool {
	event, ok := m.Get()
	if !ok {
		return false
	}
	e.Emit(ctx, event)
	return true
}

// push isolates the sink so a panicking adapter cannot take the page down.
func (e *Emitter) push(ctx context.Context, record events.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return e.sink.Push(ctx, record)
}

type panicError struct{ value any }

func (p *panicError) Error() string { return "sink panicked" }
