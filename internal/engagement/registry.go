package engagement

import (
	"context"
	"slices"
	"sync"
	"time"

	id "leadengine/pkg/domain"
	"leadengine/pkg/requestcontext"
)

// Registry tracks the page views currently mounted across visitors. The HTTP
// layer starts a view on page load and ends it from the unload beacon.
type Registry struct {
	mu      sync.Mutex
	views   map[id.PageViewID]*Aggregator
	emitter Emitter
	opts    []Option
}

// NewRegistry creates an empty registry. opts are applied to every aggregator.
func NewRegistry(emitter Emitter, opts ...Option) *Registry {
	return &Registry{
		views:   make(map[id.PageViewID]*Aggregator),
		emitter: emitter,
		opts:    opts,
	}
}

// Start mounts a new page view owned by the visitor in ctx. The page in ctx
// is kept for flushes that happen outside any request.
func (r *Registry) Start(ctx context.Context, pageType, location string) (id.PageViewID, *Aggregator) {
	viewID := id.NewPageViewID()
	agg := New(pageType, location, r.emitter, slices.Concat(r.opts, []Option{WithOrigin(ctx)})...)

	r.mu.Lock()
	r.views[viewID] = agg
	r.mu.Unlock()
	return viewID, agg
}

// Get returns a mounted page view if the visitor in ctx owns it. Views of
// other visitors look the same as unknown ones.
func (r *Registry) Get(ctx context.Context, viewID id.PageViewID) (*Aggregator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg, ok := r.views[viewID]
	if !ok || agg.Owner() != requestcontext.VisitorID(ctx) {
		return nil, false
	}
	return agg, true
}

// End unmounts a page view owned by the visitor in ctx and flushes its
// summary. found is false for unknown, foreign or already-ended views.
func (r *Registry) End(ctx context.Context, viewID id.PageViewID) (found, emitted bool) {
	r.mu.Lock()
	agg, ok := r.views[viewID]
	if ok && agg.Owner() != requestcontext.VisitorID(ctx) {
		ok = false
	}
	if ok {
		delete(r.views, viewID)
	}
	r.mu.Unlock()

	if !ok {
		return false, false
	}
	return true, agg.Close(ctx)
}

// Sweep ends views started more than maxAge ago. Browsers drop unload beacons
// often enough that abandoned views must be flushed server-side.
func (r *Registry) Sweep(ctx context.Context, maxAge time.Duration) int {
	r.mu.Lock()
	var stale []*Aggregator
	for viewID, agg := range r.views {
		if agg.Age() > maxAge {
			stale = append(stale, agg)
			delete(r.views, viewID)
		}
	}
	r.mu.Unlock()

	for _, agg := range stale {
		agg.Close(ctx)
	}
	return len(stale)
}

// Len returns the number of mounted views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}
