package health

import (
	"net/http"

	"github.com/aatuh/api-shield/httpx"
	"github.com/aatuh/api-shield/ports"
	"github.com/aatuh/api-shield/specs"
)

// Handler provides HTTP handlers for health endpoints.
type Handler struct {
	manager ports.HealthManager
}

// NewHandler creates a new health handler.
func NewHandler(manager ports.HealthManager) *Handler {
	return &Handler{manager: manager}
}

// LivenessHandler handles liveness checks.
func (h *Handler) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	write(w, h.manager.GetLiveness(r.Context()))
}

// ReadinessHandler handles readiness checks.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	write(w, h.manager.GetReadiness(r.Context()))
}

func write(w http.ResponseWriter, result ports.HealthResult) {
	statusCode := http.StatusOK
	if result.Status != ports.HealthStatusHealthy {
		statusCode = http.StatusServiceUnavailable
	}
	httpx.WriteJSON(w, statusCode, map[string]interface{}{
		"status":    result.Status,
		"timestamp": result.Timestamp,
		"message":   result.Message,
		"checks":    result.Details,
	})
}

// RegisterRoutes registers the probe endpoints on the given router.
func (h *Handler) RegisterRoutes(router interface {
	Get(pattern string, h http.HandlerFunc)
}) {
	router.Get(specs.Livez, h.LivenessHandler)
	router.Get(specs.Readyz, h.ReadinessHandler)
}
