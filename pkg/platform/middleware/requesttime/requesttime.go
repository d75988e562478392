// Package requesttime pins one "now" per request, so every event emitted while
// handling it carries the same timestamp.
package requesttime

import (
	"net/http"
	"time"

	"leadengine/pkg/requestcontext"
)

// Middleware captures the request start time.
func Middleware(next http.Handler) http.Handler {
	return WithClock(time.Now)(next)
}

// WithClock is Middleware with an injected clock.
func WithClock(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), clock().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
