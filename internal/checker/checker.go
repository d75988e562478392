// Package checker runs the ZIP code availability widget: validation, the
// coverage lookup, history recording and the service_area_check funnel.
package checker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"leadengine/internal/analytics/events"
	"leadengine/internal/eligibility"
	dErrors "leadengine/pkg/domain-errors"
)

// Status is the widget state.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusLoading    Status = "loading"
	StatusAvailable  Status = "available"
	StatusWaitlisted Status = "waitlisted"
	StatusError      Status = "error"
)

// ServiceErrorMessage is shown when the coverage lookup fails.
const ServiceErrorMessage = "We couldn't check availability right now. Please try again."

// ErrorLocation tags error_tracking events raised by the checker.
const ErrorLocation = "zip_checker"

// Result is the outcome of one successful check.
type Result struct {
	Status        Status `json:"status"`
	ZipCode       string `json:"zip_code"`
	Serviceable   bool   `json:"serviceable"`
	WaitTime      string `json:"wait_time,omitempty"`
	InstallWindow string `json:"install_window,omitempty"`
}

// Emitter is the analytics port.
type Emitter interface {
	Emit(ctx context.Context, event events.Event)
}

// History records successful lookups.
type History interface {
	Record(ctx context.Context, code eligibility.PostalCode)
}

// Checker is one visitor's availability widget. Checks are serialized; Status
// may be read while a check is in flight.
type Checker struct {
	set     *eligibility.Set
	lookup  AvailabilityLookup
	history History
	emitter Emitter
	logger  *slog.Logger

	run sync.Mutex

	mu           sync.RWMutex
	status       Status
	last         *Result
	onTransition func(from, to Status)
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTransitionObserver is called synchronously on every status change.
func WithTransitionObserver(fn func(from, to Status)) Option {
	return func(c *Checker) {
		c.onTransition = fn
	}
}

// New creates an idle checker.
func New(set *eligibility.Set, lookup AvailabilityLookup, history History, emitter Emitter, opts ...Option) (*Checker, error) {
	switch {
	case set == nil:
		return nil, errors.New("eligibility set is required")
	case lookup == nil:
		return nil, errors.New("availability lookup is required")
	case history == nil:
		return nil, errors.New("lookup history is required")
	case emitter == nil:
		return nil, errors.New("emitter is required")
	}
	c := &Checker{
		set:     set,
		lookup:  lookup,
		history: history,
		emitter: emitter,
		logger:  slog.New(slog.DiscardHandler),
		status:  StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Check validates raw and, when it is a well-formed code, runs the lookup.
// A malformed code returns a validation error without changing state or
// emitting anything. A failed lookup returns a service_unavailable error and
// leaves the checker idle.
func (c *Checker) Check(ctx context.Context, raw string) (Result, error) {
	code, err := eligibility.ParsePostalCode(raw)
	if err != nil {
		return Result{}, err
	}

	c.run.Lock()
	defer c.run.Unlock()

	c.mu.Lock()
	c.last = nil
	c.transitionLocked(StatusLoading)
	c.mu.Unlock()

	zip := code.String()
	c.emitter.Emit(ctx, events.ServiceAreaCheck(events.ServiceAreaCheckInput{
		Action:  events.CheckStart,
		ZipCode: zip,
	}))

	serviceable := c.set.IsServiceable(code)
	avail, err := c.lookup.Lookup(ctx, code, serviceable)
	if err != nil {
		c.logger.WarnContext(ctx, "availability lookup failed", "zip_code", zip, "error", err)
		c.emitter.Emit(ctx, events.ErrorTracking(events.ErrorInput{
			Type:     events.NameServiceAreaCheck,
			Message:  ServiceErrorMessage,
			Location: ErrorLocation,
		}))
		c.mu.Lock()
		c.transitionLocked(StatusError)
		c.transitionLocked(StatusIdle)
		c.mu.Unlock()
		return Result{}, dErrors.Wrap(err, dErrors.CodeUnavailable, ServiceErrorMessage)
	}

	c.history.Record(ctx, code)

	res := Result{
		Status:        StatusAvailable,
		ZipCode:       zip,
		Serviceable:   serviceable,
		InstallWindow: avail.InstallWindow,
	}
	outcome := events.ResultAvailable
	if !serviceable {
		res.Status = StatusWaitlisted
		res.InstallWindow = ""
		res.WaitTime = avail.WaitTime
		if res.WaitTime == "" {
			res.WaitTime = WaitlistWaitTime
		}
		outcome = events.ResultWaitlist
	}

	for _, action := range []events.CheckAction{events.CheckSubmit, events.CheckResultView} {
		c.emitter.Emit(ctx, events.ServiceAreaCheck(events.ServiceAreaCheckInput{
			Action:   action,
			ZipCode:  zip,
			Result:   outcome,
			WaitTime: res.WaitTime,
		}))
	}

	c.mu.Lock()
	c.last = &res
	c.transitionLocked(res.Status)
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "availability checked", "zip_code", zip, "result", outcome)
	return res, nil
}

// Reset returns the checker to idle and forgets the last result.
func (c *Checker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = nil
	c.transitionLocked(StatusIdle)
}

// Status returns the current state.
func (c *Checker) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Last returns the most recent successful result, if the checker still shows it.
func (c *Checker) Last() (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.last == nil {
		return Result{}, false
	}
	return *c.last, true
}

func (c *Checker) transitionLocked(to Status) {
	from := c.status
	if from == to {
		return
	}
	c.status = to
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}
