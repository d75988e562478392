// Package httpserver builds the *http.Server the service listens with.
package httpserver

import (
	"net/http"
	"time"
)

const (
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultReadTimeout       = 10 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// writeHeadroom is added on top of the slowest handler when sizing
	// WriteTimeout so encoding the response still fits.
	writeHeadroom = 5 * time.Second
)

// Option adjusts the server.
type Option func(*http.Server)

// WithSlowestHandler widens WriteTimeout when a handler may legitimately
// block for d, such as the simulated availability lookup.
func WithSlowestHandler(d time.Duration) Option {
	return func(s *http.Server) {
		if need := d + writeHeadroom; need > s.WriteTimeout {
			s.WriteTimeout = need
		}
	}
}

// New builds an HTTP server with the default timeouts.
func New(addr string, handler http.Handler, opts ...Option) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		ReadTimeout:       DefaultReadTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}
