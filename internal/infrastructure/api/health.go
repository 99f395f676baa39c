package api

import (
	"context"
	"net/http"
	"sort"
	"time"
)

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// health pings every registered dependency
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.deps.HealthChecks))
	for name := range h.deps.HealthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{Status: "healthy", Timestamp: time.Now().UTC(), Checks: map[string]string{}}
	status := http.StatusOK
	for _, name := range names {
		if err := h.deps.HealthChecks[name](ctx); err != nil {
			h.logger.Warn().Err(err).Str("dependency", name).Msg("Health check failed")
			resp.Checks[name] = err.Error()
			resp.Status = "error"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	respondJSON(w, status, resp)
}
