// Package middleware holds the HTTP middleware shared by every route:
// correlation IDs, panic recovery, request logging and latency metrics.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"leadengine/internal/platform/metrics"
	"leadengine/pkg/platform/middleware/metadata"
	"leadengine/pkg/requestcontext"
)

// Logger writes one line per request and records its latency. It measures from
// the request time pinned by requesttime when that middleware runs first.
func Logger(logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := requestcontext.Now(r.Context())
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)
			route := routePattern(r)
			m.ObserveRequest(r.Method, route, status, elapsed.Seconds())

			ctx := r.Context()
			client := metadata.ClientFrom(ctx)
			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "http request",
				"request_id", requestcontext.RequestID(ctx),
				"visitor_id", requestcontext.VisitorID(ctx).String(),
				"method", r.Method,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", elapsed.Milliseconds(),
				"client_ip", client.IP,
				"browser", client.Browser,
				"os", client.OS,
				"mobile", client.Mobile,
				"bot", client.Bot,
			)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
