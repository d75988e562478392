// Package engagement accumulates per-page-view dwell time, scroll depth and
// interactions, and reports a single summary when the view ends.
package engagement

import (
	"context"
	"sync"
	"time"

	"leadengine/internal/analytics/events"
	id "leadengine/pkg/domain"
	"leadengine/pkg/requestcontext"
)

// Emitter is the analytics port the aggregator reports through.
type Emitter interface {
	Emit(ctx context.Context, event events.Event)
	EmitMaybe(ctx context.Context, m events.Maybe) bool
}

// Snapshot is the accumulated state of one page view.
type Snapshot struct {
	PageType     string    `json:"page_type"`
	Location     string    `json:"location"`
	StartedAt    time.Time `json:"started_at"`
	MaxScroll    int       `json:"max_scroll_percent"`
	Interactions int       `json:"interactions"`
}

// Aggregator owns the snapshot for one mounted page view. All methods are safe
// for concurrent use; after Close every method is a no-op.
type Aggregator struct {
	mu       sync.Mutex
	emitter  Emitter
	clock    func() time.Time
	snap     Snapshot
	reported map[int]bool
	closed   bool

	// Captured at mount so a server-side flush still reports where and for
	// whom the view happened.
	page    requestcontext.Page
	visitor id.VisitorID
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock sets the clock used for dwell time.
func WithClock(clock func() time.Time) Option {
	return func(a *Aggregator) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithOrigin records the page and visitor from the request that mounted the
// view. They fill in for a flush context that carries neither.
func WithOrigin(ctx context.Context) Option {
	return func(a *Aggregator) {
		a.page = requestcontext.PageFrom(ctx)
		a.visitor = requestcontext.VisitorID(ctx)
	}
}

// New mounts an aggregator and starts the dwell timer.
func New(pageType, location string, emitter Emitter, opts ...Option) *Aggregator {
	a := &Aggregator{
		emitter:  emitter,
		clock:    time.Now,
		reported: make(map[int]bool, len(events.ScrollMilestones)),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.snap = Snapshot{PageType: pageType, Location: location, StartedAt: a.clock()}
	return a
}

// Scroll records a scroll position in percent. The maximum never decreases and
// each milestone is reported once, on the first crossing, lowest first.
func (a *Aggregator) Scroll(ctx context.Context, percent int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}

	percent = min(max(percent, 0), 100)
	if percent <= a.snap.MaxScroll {
		return
	}
	a.snap.MaxScroll = percent

	ctx = a.withOrigin(ctx)
	for _, milestone := range events.ScrollMilestones {
		if milestone > percent || a.reported[milestone] {
			continue
		}
		a.reported[milestone] = true
		a.emitter.EmitMaybe(ctx, events.ScrollDepth(events.ScrollDepthInput{
			Percent:  milestone,
			PageType: a.snap.PageType,
			Location: a.snap.Location,
		}))
	}
}

// Interact counts a click or key press.
func (a *Aggregator) Interact() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.snap.Interactions++
}

// Close ends the page view and emits the engagement summary if the dwell time
// cleared the page type's threshold. Only the first call has any effect.
// Returns whether a summary was emitted.
func (a *Aggregator) Close(ctx context.Context) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return false
	}
	a.closed = true

	elapsed := int(a.clock().Sub(a.snap.StartedAt) / time.Second)
	return a.emitter.EmitMaybe(a.withOrigin(ctx), events.PageEngagement(events.PageEngagementInput{
		PageType:     a.snap.PageType,
		Location:     a.snap.Location,
		TimeSpent:    elapsed,
		ScrollDepth:  a.snap.MaxScroll,
		Interactions: a.snap.Interactions,
	}))
}

// withOrigin restores the mount-time page and visitor on contexts that lack
// them, such as the sweeper's.
func (a *Aggregator) withOrigin(ctx context.Context) context.Context {
	if requestcontext.PageFrom(ctx) == (requestcontext.Page{}) && a.page != (requestcontext.Page{}) {
		ctx = requestcontext.WithPage(ctx, a.page)
	}
	if requestcontext.VisitorID(ctx).IsNil() && !a.visitor.IsNil() {
		ctx = requestcontext.WithVisitorID(ctx, a.visitor)
	}
	return ctx
}

// Owner is the visitor whose request mounted the view.
func (a *Aggregator) Owner() id.VisitorID {
	return a.visitor
}

// Snapshot returns a copy of the accumulated state.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap
}

// Age returns how long the view has been mounted.
func (a *Aggregator) Age() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.clock().Sub(a.snap.StartedAt)
}

// Closed reports whether the view has been torn down.
func (a *Aggregator) Closed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}
