// Package metadata captures who is calling: client IP and a parsed
// User-Agent. Handlers read it from the context for request logs.
package metadata

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

type contextKeyClient struct{}

// Client describes the caller.
type Client struct {
	IP        string
	UserAgent string
	Browser   string
	OS        string
	Mobile    bool
	Bot       bool
}

// ClientMetadata parses the caller and adds it to the context.
// Apply it early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := Parse(ClientIPFromRequest(r), r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), client)))
	})
}

// Parse builds a Client from a raw User-Agent.
func Parse(ip, userAgent string) Client {
	c := Client{IP: ip, UserAgent: userAgent}
	if userAgent == "" {
		return c
	}
	ua := useragent.New(userAgent)
	c.Browser, _ = ua.Browser()
	c.OS = ua.OS()
	c.Mobile = ua.Mobile()
	c.Bot = ua.Bot()
	return c
}

// ClientFrom retrieves the caller; zero value if the middleware did not run.
func ClientFrom(ctx context.Context) Client {
	if c, ok := ctx.Value(contextKeyClient{}).(Client); ok {
		return c
	}
	return Client{}
}

// WithClient injects a caller. Useful for tests that skip the middleware chain.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, contextKeyClient{}, c)
}

// ClientIPFromRequest extracts the real client IP, honoring proxy headers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For is "client, proxy1, proxy2"; the first hop is the client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}

	return "unknown"
}
