package testutil

import (
	"net/http"

	id "leadengine/pkg/domain"
	"leadengine/pkg/platform/middleware/page"
	"leadengine/pkg/platform/middleware/visitor"
	"leadengine/pkg/requestcontext"
)

// AsVisitor sends the request as the given visitor, the way a returning
// browser presents its cookie.
func AsVisitor(req *http.Request, visitorID id.VisitorID) *http.Request {
	req.Header.Set(visitor.HeaderName, visitorID.String())
	return req
}

// OnPage sets the page headers the page middleware reads.
func OnPage(req *http.Request, url, title string) *http.Request {
	req.Header.Set(page.HeaderURL, url)
	req.Header.Set(page.HeaderTitle, title)
	return req
}

// WithVisitorContext injects a visitor directly into the request context.
// Useful for handler tests that skip the middleware chain.
func WithVisitorContext(req *http.Request, visitorID id.VisitorID) *http.Request {
	return req.WithContext(requestcontext.WithVisitorID(req.Context(), visitorID))
}
