package httptransport

import (
	"net/http"

	"leadengine/internal/analytics/events"
	"leadengine/internal/checker"
	"leadengine/internal/lookup"
	dErrors "leadengine/pkg/domain-errors"
	"leadengine/pkg/platform/httputil"
	"leadengine/pkg/requestcontext"
)

// CheckRequest is the body of POST /eligibility/check. The code is validated
// by the checker so malformed input follows the inline-message path.
type CheckRequest struct {
	ZipCode string `json:"zip_code"`
}

// CheckResponse reports the outcome plus the refreshed history for the dropdown.
type CheckResponse struct {
	Status        checker.Status `json:"status"`
	ZipCode       string         `json:"zip_code"`
	Result        string         `json:"result"`
	WaitTime      string         `json:"wait_time,omitempty"`
	InstallWindow string         `json:"install_window,omitempty"`
	Recent        []string       `json:"recent"`
}

// RecentResponse is the body of GET /lookups/recent.
type RecentResponse struct {
	Recent []string `json:"recent"`
}

func (h *Handler) handleEligibilityCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	history := lookup.Load(ctx, h.visitorStore(ctx), h.logger)
	c, err := checker.New(h.serviceArea, h.availability, history, h.emitter, checker.WithLogger(h.logger))
	if err != nil {
		h.logger.ErrorContext(ctx, "checker wiring failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "checker unavailable"))
		return
	}

	res, err := c.Check(ctx, req.ZipCode)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result := events.ResultAvailable
	if res.Status == checker.StatusWaitlisted {
		result = events.ResultWaitlist
	}
	httputil.WriteJSON(w, http.StatusOK, CheckResponse{
		Status:        res.Status,
		ZipCode:       res.ZipCode,
		Result:        result,
		WaitTime:      res.WaitTime,
		InstallWindow: res.InstallWindow,
		Recent:        history.List(),
	})
}

func (h *Handler) handleRecentLookups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	history := lookup.Load(ctx, h.visitorStore(ctx), h.logger)
	httputil.WriteJSON(w, http.StatusOK, RecentResponse{Recent: history.List()})
}
