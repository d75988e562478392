package httptransport

import (
	"net/http"

	"leadengine/internal/leads"
	"leadengine/internal/lifecycle"
	"leadengine/pkg/platform/httputil"
	"leadengine/pkg/requestcontext"
)

// CustomerRequest is the body of POST /customers.
type CustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

func (h *Handler) classifier(r *http.Request) *lifecycle.Classifier {
	return lifecycle.New(h.visitorStore(r.Context()), h.logger)
}

func (h *Handler) handleLifecycle(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.classifier(r).Snapshot(r.Context()))
}

func (h *Handler) handleLeadSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	sub, ok := httputil.DecodeAndPrepare[leads.Submission](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	lead, err := h.leads.Submit(ctx, h.classifier(r), *sub)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, lead)
}

func (h *Handler) handleCustomerConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CustomerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	snap, err := h.leads.Convert(ctx, h.classifier(r), req.CustomerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snap)
}
