// Package lifecycle classifies visitors into new, returning, lead, or customer
// from durable per-visitor flags.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"

	"leadengine/internal/storage"
	"leadengine/pkg/platform/sentinel"
)

// Storage keys. They are independent flags rather than a single enum so data
// written by earlier site versions keeps classifying correctly.
const (
	KeyVisited    = "satlink_visited"
	KeyLeadID     = "satlink_lead_id"
	KeyCustomerID = "satlink_customer_id"

	visitedValue = "true"
)

// Snapshot is the classified stage plus the identifiers behind it.
type Snapshot struct {
	Stage      Stage  `json:"stage"`
	LeadID     string `json:"lead_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
}

// Classifier reads and promotes one visitor's lifecycle stage. It never
// returns errors: unavailable storage degrades to a fresh visitor.
type Classifier struct {
	kv     storage.Store
	logger *slog.Logger
}

// New creates a classifier over a visitor-scoped store.
func New(kv storage.Store, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Classifier{kv: kv, logger: logger}
}

// Classify returns the most advanced stage the flags support. Asking marks the
// visitor as seen, so a new visitor classifies as returning next time.
func (c *Classifier) Classify(ctx context.Context) Stage {
	return c.Snapshot(ctx).Stage
}

// Snapshot is Classify with the stored identifiers attached.
func (c *Classifier) Snapshot(ctx context.Context) Snapshot {
	if customerID, ok := c.read(ctx, KeyCustomerID); ok {
		leadID, _ := c.read(ctx, KeyLeadID)
		return Snapshot{Stage: StageCustomer, LeadID: leadID, CustomerID: customerID}
	}
	if leadID, ok := c.read(ctx, KeyLeadID); ok {
		return Snapshot{Stage: StageLead, LeadID: leadID}
	}
	if _, ok := c.read(ctx, KeyVisited); ok {
		return Snapshot{Stage: StageReturning}
	}

	c.write(ctx, KeyVisited, visitedValue)
	return Snapshot{Stage: StageNew}
}

// PromoteToLead records the lead ID. It never touches the customer flag, so a
// customer stays a customer.
func (c *Classifier) PromoteToLead(ctx context.Context, leadID string) {
	if leadID == "" {
		return
	}
	c.write(ctx, KeyLeadID, leadID)
}

// PromoteToCustomer records the customer ID. The lead flag is left as-is.
func (c *Classifier) PromoteToCustomer(ctx context.Context, customerID string) {
	if customerID == "" {
		return
	}
	c.write(ctx, KeyCustomerID, customerID)
}

// read treats missing, empty, and unreadable values alike as absent.
func (c *Classifier) read(ctx context.Context, key string) (string, bool) {
	v, err := c.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			c.logger.DebugContext(ctx, "lifecycle flag unreadable", "key", key, "error", err)
		}
		return "", false
	}
	return v, v != ""
}

func (c *Classifier) write(ctx context.Context, key, value string) {
	if err := c.kv.Set(ctx, key, value); err != nil {
		c.logger.DebugContext(ctx, "lifecycle flag not persisted", "key", key, "error", err)
	}
}
