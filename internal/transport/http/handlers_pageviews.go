package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"leadengine/internal/analytics/events"
	"leadengine/internal/engagement"
	id "leadengine/pkg/domain"
	dErrors "leadengine/pkg/domain-errors"
	"leadengine/pkg/platform/httputil"
	"leadengine/pkg/requestcontext"
)

// PageViewStarted is returned when a page view mounts.
type PageViewStarted struct {
	PageViewID          string `json:"page_view_id"`
	EngagementThreshold int    `json:"engagement_threshold"`
}

// PageViewState is the accumulated snapshot.
type PageViewState struct {
	PageViewID string `json:"page_view_id"`
	engagement.Snapshot
}

// PageViewEnded reports whether the view qualified as engaged.
type PageViewEnded struct {
	PageViewID string `json:"page_view_id"`
	Qualified  bool   `json:"qualified"`
}

func (h *Handler) handlePageViewStart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[PageViewRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	viewID, _ := h.pageViews.Start(ctx, req.PageType, req.Location)
	httputil.WriteJSON(w, http.StatusCreated, PageViewStarted{
		PageViewID:          viewID.String(),
		EngagementThreshold: events.EngagementThreshold(req.PageType),
	})
}

func (h *Handler) handlePageViewScroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewID, agg, ok := h.pageView(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ScrollRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	agg.Scroll(ctx, req.Percent)
	httputil.WriteJSON(w, http.StatusOK, PageViewState{PageViewID: viewID.String(), Snapshot: agg.Snapshot()})
}

func (h *Handler) handlePageViewInteraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewID, agg, ok := h.pageView(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[InteractionRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	for range req.Count {
		agg.Interact()
	}
	httputil.WriteJSON(w, http.StatusOK, PageViewState{PageViewID: viewID.String(), Snapshot: agg.Snapshot()})
}

func (h *Handler) handlePageViewEnd(w http.ResponseWriter, r *http.Request) {
	viewID, err := id.ParsePageViewID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	found, emitted := h.pageViews.End(r.Context(), viewID)
	if !found {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "page view not found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PageViewEnded{PageViewID: viewID.String(), Qualified: emitted})
}

func (h *Handler) pageView(w http.ResponseWriter, r *http.Request) (id.PageViewID, *engagement.Aggregator, bool) {
	viewID, err := id.ParsePageViewID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.PageViewID{}, nil, false
	}
	agg, ok := h.pageViews.Get(r.Context(), viewID)
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "page view not found"))
		return id.PageViewID{}, nil, false
	}
	return viewID, agg, true
}
