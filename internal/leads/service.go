// Package leads accepts lead and customer conversions, promotes the visitor's
// lifecycle stage and reports the conversion.
package leads

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"leadengine/internal/analytics/events"
	"leadengine/internal/lifecycle"
	id "leadengine/pkg/domain"
	dErrors "leadengine/pkg/domain-errors"
)

const (
	// DefaultFormName is used when the page does not name its form.
	DefaultFormName = "lead_form"
	// DefaultServiceType is the only product sold today.
	DefaultServiceType = "satellite_internet"
)

// Promoter is the visitor's lifecycle.
type Promoter interface {
	PromoteToLead(ctx context.Context, leadID string)
	PromoteToCustomer(ctx context.Context, customerID string)
	Snapshot(ctx context.Context) lifecycle.Snapshot
}

// Emitter is the analytics port.
type Emitter interface {
	Emit(ctx context.Context, event events.Event)
}

// Lead is an accepted conversion.
type Lead struct {
	ID      string          `json:"lead_id"`
	ZipCode string          `json:"zip_code"`
	Stage   lifecycle.Stage `json:"stage"`
}

// Service handles conversions.
type Service struct {
	emitter Emitter
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Service.
func New(emitter Emitter, opts ...Option) (*Service, error) {
	if emitter == nil {
		return nil, errors.New("emitter is required")
	}
	s := &Service{
		emitter: emitter,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit validates a lead form, promotes the visitor to lead and emits
// generate_lead. A visitor who is already a customer stays a customer.
func (s *Service) Submit(ctx context.Context, lc Promoter, sub Submission) (Lead, error) {
	if problems := Validate(sub); len(problems) > 0 {
		s.logger.InfoContext(ctx, "lead rejected",
			"name", redactName(sub.Name),
			"email", redactEmail(sub.Email),
			"problems", len(problems),
		)
		return Lead{}, dErrors.New(dErrors.CodeValidation, strings.Join(problems, "; "))
	}

	leadID := id.NewLeadID().String()
	zip := strings.TrimSpace(sub.ZipCode)
	lc.PromoteToLead(ctx, leadID)

	s.emitter.Emit(ctx, events.LeadFormSubmit(events.LeadFormInput{
		FormName:     orDefault(sub.FormName, DefaultFormName),
		FormLocation: sub.FormLocation,
		ServiceType:  orDefault(sub.ServiceType, DefaultServiceType),
		ZipCode:      zip,
	}))

	s.logger.InfoContext(ctx, "lead accepted",
		"lead_id", leadID,
		"name", redactName(sub.Name),
		"email", redactEmail(sub.Email),
		"zip_code", zip,
	)
	return Lead{ID: leadID, ZipCode: zip, Stage: lc.Snapshot(ctx).Stage}, nil
}

// Convert promotes the visitor to customer. An empty customerID mints one.
func (s *Service) Convert(ctx context.Context, lc Promoter, customerID string) (lifecycle.Snapshot, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		customerID = id.NewLeadID().String()
	}
	if len(customerID) > 128 {
		return lifecycle.Snapshot{}, dErrors.New(dErrors.CodeValidation, "customer ID is too long")
	}

	lc.PromoteToCustomer(ctx, customerID)
	snap := lc.Snapshot(ctx)
	s.logger.InfoContext(ctx, "customer converted", "customer_id", customerID, "stage", snap.Stage)
	return snap, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
