package httptransport

import (
	"net/http"

	"leadengine/internal/analytics/events"
	"leadengine/pkg/platform/httputil"
	"leadengine/pkg/requestcontext"
)

// EventAccepted acknowledges a recorded client-side event.
type EventAccepted struct {
	Event string `json:"event"`
}

func (h *Handler) handlePhoneClick(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[PhoneClickRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.accept(w, r, events.PhoneClick(events.PhoneClickInput{
		PhoneNumber:   req.PhoneNumber,
		ClickLocation: req.ClickLocation,
	}))
}

func (h *Handler) handleEmailClick(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[EmailClickRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.accept(w, r, events.EmailClick(events.EmailClickInput{
		EmailAddress:  req.EmailAddress,
		ClickLocation: req.ClickLocation,
	}))
}

func (h *Handler) handleCTAClick(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[CTAClickRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.accept(w, r, events.CTAClick(events.CTAClickInput{
		Text:           req.Text,
		Location:       req.Location,
		DestinationURL: req.DestinationURL,
	}))
}

func (h *Handler) handleErrorEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ErrorEventRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.accept(w, r, events.ErrorTracking(events.ErrorInput{
		Type:     req.Type,
		Message:  req.Message,
		Location: req.Location,
	}))
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request, e events.Event) {
	h.emitter.Emit(r.Context(), e)
	httputil.WriteJSON(w, http.StatusAccepted, EventAccepted{Event: e.Name()})
}

func (h *Handler) handleDataLayer(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.dataLayer.Records())
}
