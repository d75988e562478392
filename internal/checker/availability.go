package checker

//go:generate mockgen -source=availability.go -destination=mocks/mocks.go -package=mocks AvailabilityLookup

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"leadengine/internal/eligibility"
)

const (
	// DefaultLatency models the round-trip of the coverage service.
	DefaultLatency = 1500 * time.Millisecond
	// WaitlistWaitTime is quoted for codes outside the service area.
	WaitlistWaitTime = "2-4 weeks"
	// NextDayInstall is quoted for serviceable codes.
	NextDayInstall = "Next-day installation"
)

// Availability is what the coverage service knows about a code.
type Availability struct {
	Serviceable   bool
	WaitTime      string
	InstallWindow string
}

// AvailabilityLookup is the coverage service port. serviceable is the local
// eligibility answer; implementations may refine it with scheduling details.
type AvailabilityLookup interface {
	Lookup(ctx context.Context, code eligibility.PostalCode, serviceable bool) (Availability, error)
}

// SimulatedLookup stands in for the coverage API with a fixed delay.
type SimulatedLookup struct {
	latency time.Duration
}

// NewSimulatedLookup creates a lookup with the given delay. Zero or negative
// latency answers immediately.
func NewSimulatedLookup(latency time.Duration) *SimulatedLookup {
	return &SimulatedLookup{latency: latency}
}

var tracer = otel.Tracer("leadengine/internal/checker")

func (l *SimulatedLookup) Lookup(ctx context.Context, code eligibility.PostalCode, serviceable bool) (Availability, error) {
	ctx, span := tracer.Start(ctx, "availability.lookup")
	defer span.End()
	span.SetAttributes(
		attribute.String("zip_code", code.String()),
		attribute.Bool("serviceable", serviceable),
	)

	if l.latency > 0 {
		t := time.NewTimer(l.latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			span.SetStatus(codes.Error, "lookup cancelled")
			return Availability{}, ctx.Err()
		case <-t.C:
		}
	}

	if serviceable {
		return Availability{Serviceable: true, InstallWindow: NextDayInstall}, nil
	}
	return Availability{WaitTime: WaitlistWaitTime}, nil
}
