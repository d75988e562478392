// Package page attaches the visitor's current page to the request context so
// emitted events carry page_url and page_title.
package page

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"leadengine/pkg/requestcontext"
)

const (
	HeaderURL   = "X-Page-URL"
	HeaderTitle = "X-Page-Title"
)

// Byte bounds on what a client can stuff into every event.
const (
	maxURLLen   = 2048
	maxTitleLen = 256
)

// Middleware reads the page from X-Page-URL and X-Page-Title, falling back to
// the Referer for the URL.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := requestcontext.Page{
			URL:   strings.TrimSpace(r.Header.Get(HeaderURL)),
			Title: strings.TrimSpace(r.Header.Get(HeaderTitle)),
		}
		if p.URL == "" {
			p.URL = r.Referer()
		}
		p.URL = truncate(p.URL, maxURLLen)
		p.Title = truncate(p.Title, maxTitleLen)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithPage(r.Context(), p)))
	})
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
