// Package visitor identifies the browser behind a request. The ID scopes
// durable storage the way each browser has its own localStorage.
package visitor

import (
	"net/http"
	"time"

	id "leadengine/pkg/domain"
	"leadengine/pkg/requestcontext"
)

const (
	// CookieName holds the visitor ID.
	CookieName = "visitor_id"
	// HeaderName lets non-browser clients carry the ID explicitly.
	HeaderName = "X-Visitor-ID"
	// CookieMaxAge keeps a visitor recognizable across sessions.
	CookieMaxAge = 365 * 24 * time.Hour
)

// Codec turns a visitor ID into the value presented by the client and back.
type Codec interface {
	Encode(id.VisitorID) (string, error)
	Decode(string) (id.VisitorID, error)
}

// PlainCodec presents the bare UUID.
type PlainCodec struct{}

func (PlainCodec) Encode(v id.VisitorID) (string, error) { return v.String(), nil }
func (PlainCodec) Decode(s string) (id.VisitorID, error) { return id.ParseVisitorID(s) }

// Config controls the visitor cookie. A nil Codec means PlainCodec.
type Config struct {
	Secure bool
	Codec  Codec
}

// Middleware reads the visitor ID from the header or cookie, minting and
// setting a new one when absent, malformed or not verifiable by the codec.
// The presented value is echoed in X-Visitor-ID for non-browser clients.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		codec := cfg.Codec
		if codec == nil {
			codec = PlainCodec{}
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID, value, ok := fromRequest(r, codec)
			if !ok {
				visitorID = id.NewVisitorID()
				// An encode failure serves the request under a one-off scope.
				value, _ = codec.Encode(visitorID)
				if value != "" {
					http.SetCookie(w, &http.Cookie{
						Name:     CookieName,
						Value:    value,
						Path:     "/",
						MaxAge:   int(CookieMaxAge / time.Second),
						HttpOnly: true,
						Secure:   cfg.Secure,
						SameSite: http.SameSiteLaxMode,
					})
				}
			}
			if value != "" {
				w.Header().Set(HeaderName, value)
			}
			ctx := requestcontext.WithVisitorID(r.Context(), visitorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func fromRequest(r *http.Request, codec Codec) (id.VisitorID, string, bool) {
	if raw := r.Header.Get(HeaderName); raw != "" {
		if v, err := codec.Decode(raw); err == nil {
			return v, raw, true
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		if v, err := codec.Decode(c.Value); err == nil {
			return v, c.Value, true
		}
	}
	return id.VisitorID{}, "", false
}
