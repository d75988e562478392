package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leadengine/internal/analytics"
	"leadengine/internal/analytics/sink"
	"leadengine/internal/checker"
	"leadengine/internal/eligibility"
	"leadengine/internal/engagement"
	"leadengine/internal/leads"
	"leadengine/internal/platform/metrics"
	"leadengine/internal/platform/middleware"
	"leadengine/internal/storage"
	"leadengine/pkg/platform/middleware/metadata"
	"leadengine/pkg/platform/middleware/page"
	"leadengine/pkg/platform/middleware/requesttime"
	"leadengine/pkg/platform/middleware/visitor"
	"leadengine/pkg/requestcontext"
)

// HealthCheck probes one backing service.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators the HTTP layer delegates to.
type Deps struct {
	Store        storage.Store
	ServiceArea  *eligibility.Set
	Availability checker.AvailabilityLookup
	Emitter      *analytics.Emitter
	PageViews    *engagement.Registry
	Leads        *leads.Service
	Logger       *slog.Logger
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	// DataLayer is exposed at /debug/datalayer when set. Development only.
	DataLayer     *sink.Queue
	HealthChecks  map[string]HealthCheck
	SecureCookies bool
	// VisitorCodec signs visitor cookies. Nil presents bare UUIDs.
	VisitorCodec visitor.Codec
}

// Handler is the thin HTTP layer. It delegates to domain services without
// embedding business logic so transport concerns remain isolated.
type Handler struct {
	store         storage.Store
	serviceArea   *eligibility.Set
	availability  checker.AvailabilityLookup
	emitter       *analytics.Emitter
	pageViews     *engagement.Registry
	leads         *leads.Service
	logger        *slog.Logger
	metrics       *metrics.Metrics
	gatherer      prometheus.Gatherer
	dataLayer     *sink.Queue
	healthChecks  map[string]HealthCheck
	secureCookies bool
	visitorCodec  visitor.Codec
}

// NewHandler validates deps.
func NewHandler(d Deps) (*Handler, error) {
	switch {
	case d.Store == nil:
		return nil, errors.New("store is required")
	case d.ServiceArea == nil:
		return nil, errors.New("service area is required")
	case d.Availability == nil:
		return nil, errors.New("availability lookup is required")
	case d.Emitter == nil:
		return nil, errors.New("emitter is required")
	case d.PageViews == nil:
		return nil, errors.New("page view registry is required")
	case d.Leads == nil:
		return nil, errors.New("leads service is required")
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Handler{
		store:         d.Store,
		serviceArea:   d.ServiceArea,
		availability:  d.Availability,
		emitter:       d.Emitter,
		pageViews:     d.PageViews,
		leads:         d.Leads,
		logger:        logger,
		metrics:       d.Metrics,
		gatherer:      gatherer,
		dataLayer:     d.DataLayer,
		healthChecks:  d.HealthChecks,
		secureCookies: d.SecureCookies,
		visitorCodec:  d.VisitorCodec,
	}, nil
}

// NewRouter wires all public endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(h.logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(h.logger, h.metrics))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	r.Get("/goals", h.handleGoals)

	r.Group(func(r chi.Router) {
		r.Use(visitor.Middleware(visitor.Config{Secure: h.secureCookies, Codec: h.visitorCodec}))
		r.Use(page.Middleware)

		r.Post("/eligibility/check", h.handleEligibilityCheck)
		r.Get("/lookups/recent", h.handleRecentLookups)

		r.Get("/lifecycle", h.handleLifecycle)
		r.Post("/leads", h.handleLeadSubmit)
		r.Post("/customers", h.handleCustomerConvert)

		r.Post("/events/phone-click", h.handlePhoneClick)
		r.Post("/events/email-click", h.handleEmailClick)
		r.Post("/events/cta-click", h.handleCTAClick)
		r.Post("/events/error", h.handleErrorEvent)

		r.Post("/pageviews", h.handlePageViewStart)
		r.Post("/pageviews/{id}/scroll", h.handlePageViewScroll)
		r.Post("/pageviews/{id}/interactions", h.handlePageViewInteraction)
		r.Delete("/pageviews/{id}", h.handlePageViewEnd)
	})

	if h.dataLayer != nil {
		r.Get("/debug/datalayer", h.handleDataLayer)
	}
	return r
}

// visitorStore scopes durable storage to the calling visitor.
func (h *Handler) visitorStore(ctx context.Context) storage.Store {
	return storage.Scoped(h.store, requestcontext.VisitorID(ctx))
}
