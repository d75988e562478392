package httptransport

import (
	"context"
	"net/http"
	"sort"
	"time"

	"leadengine/internal/goals"
	dErrors "leadengine/pkg/domain-errors"
	"leadengine/pkg/platform/httputil"
)

// HealthResponse lists each backing service's state.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// GoalsResponse is the body of GET /goals.
type GoalsResponse struct {
	Goals []goals.Goal `json:"goals"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.healthChecks))
	for name := range h.healthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := HealthResponse{Status: "ok", Checks: map[string]string{}}
	for _, name := range names {
		if err := h.healthChecks[name](ctx); err != nil {
			h.logger.WarnContext(ctx, "health check failed", "check", name, "error", err)
			resp.Status = "degraded"
			resp.Checks[name] = "unavailable"
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, resp)
}

func (h *Handler) handleGoals(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		g, ok := goals.ByName(name)
		if !ok {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "goal not found"))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, GoalsResponse{Goals: []goals.Goal{g}})
		return
	}
	if event := r.URL.Query().Get("event"); event != "" {
		httputil.WriteJSON(w, http.StatusOK, GoalsResponse{Goals: goals.ForEvent(event)})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, GoalsResponse{Goals: goals.All()})
}
