// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets the visitor and page context; services and the analytics
// emitter read them without depending on net/http.
//
//	ctx = requestcontext.WithVisitorID(ctx, visitorID)
//	ctx = requestcontext.WithPage(ctx, requestcontext.Page{URL: u, Title: t})
//	page := requestcontext.PageFrom(ctx)
package requestcontext

import (
	"context"
	"time"

	id "leadengine/pkg/domain"
)

type (
	visitorIDKey   struct{}
	pageKey        struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Page describes the page the visitor is interacting with.
type Page struct {
	URL   string
	Title string
}

// VisitorID retrieves the visitor scope ID. Returns the nil UUID if not set.
func VisitorID(ctx context.Context) id.VisitorID {
	if v, ok := ctx.Value(visitorIDKey{}).(id.VisitorID); ok {
		return v
	}
	return id.VisitorID{}
}

// WithVisitorID injects the visitor scope ID.
func WithVisitorID(ctx context.Context, visitorID id.VisitorID) context.Context {
	return context.WithValue(ctx, visitorIDKey{}, visitorID)
}

// PageFrom retrieves the current page context; zero value if unset.
func PageFrom(ctx context.Context) Page {
	if p, ok := ctx.Value(pageKey{}).(Page); ok {
		return p
	}
	return Page{}
}

// WithPage injects the current page context.
func WithPage(ctx context.Context, page Page) context.Context {
	return context.WithValue(ctx, pageKey{}, page)
}

// RequestID retrieves the correlation ID, empty if unset.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID injects a correlation ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now returns the request time if one was injected, otherwise time.Now().
// Tests inject a fixed time to make timestamps deterministic.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed request time.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
