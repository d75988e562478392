// Package domain holds typed identifiers shared across the engine.
// Typed IDs keep a visitor scope from being confused with a page view or lead.
package domain

import (
	"github.com/google/uuid"

	dErrors "leadengine/pkg/domain-errors"
)

// VisitorID scopes durable storage to one visitor, the way a browser scopes localStorage.
type VisitorID uuid.UUID

// PageViewID identifies one mounted page view tracked by the engagement aggregator.
type PageViewID uuid.UUID

// LeadID is minted when a visitor completes a lead-qualifying conversion.
type LeadID uuid.UUID

func NewVisitorID() VisitorID   { return VisitorID(uuid.New()) }
func NewPageViewID() PageViewID { return PageViewID(uuid.New()) }
func NewLeadID() LeadID         { return LeadID(uuid.New()) }

func (id VisitorID) String() string  { return uuid.UUID(id).String() }
func (id PageViewID) String() string { return uuid.UUID(id).String() }
func (id LeadID) String() string     { return uuid.UUID(id).String() }

func (id VisitorID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id PageViewID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id LeadID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }

// ParseVisitorID validates an inbound visitor cookie or header value.
func ParseVisitorID(s string) (VisitorID, error) {
	u, err := parseUUID(s, "visitor ID")
	return VisitorID(u), err
}

// ParsePageViewID validates a page view path parameter.
func ParsePageViewID(s string) (PageViewID, error) {
	u, err := parseUUID(s, "page view ID")
	return PageViewID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
