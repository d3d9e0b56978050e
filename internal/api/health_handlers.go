package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type ComponentStatus struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

type HealthResponse struct {
	Success    bool                       `json:"success" example:"true"`
	Status     string                     `json:"status" example:"ok"`
	Components map[string]ComponentStatus `json:"components"`
}

// @Summary      Health check
// @Description  Pings the database and the object store. Responds 503 when either is unreachable.
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]func(context.Context) error{
		"database": s.store.Ping,
		"storage":  s.storage.Ping,
	}

	healthy := true
	components := make(map[string]ComponentStatus, len(checks))
	for name, check := range checks {
		if err := check(ctx); err != nil {
			healthy = false
			status := ComponentStatus{Status: "down"}
			if !s.config.IsProduction() {
				status.Error = err.Error()
			}
			s.logger.Warn(r.Context(), "health check failed", "component", name, "error", err)
			components[name] = status
			continue
		}
		components[name] = ComponentStatus{Status: "ok"}
	}

	w.Header().Set("Content-Type", "application/json")
	if !healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(HealthResponse{Success: false, Status: "degraded", Components: components})
		return
	}
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{Success: true, Status: "ok", Components: components})
}
