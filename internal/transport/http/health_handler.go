package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler serves liveness checks.
type HealthHandler struct {
	startedAt time.Time
	version   string
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{startedAt: time.Now(), version: version}
}

// HealthResponse is the liveness check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Healthz reports process liveness.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	})
}
