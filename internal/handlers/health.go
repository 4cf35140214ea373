package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthChecker is implemented by dependencies the health endpoint probes
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Cache     string `json:"cache"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	cache HealthChecker
}

// NewHealthHandler creates a health handler. cache may be nil when the provider
// cache is disabled.
func NewHealthHandler(cache HealthChecker) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Check handles GET /api/v1/health
func (h *HealthHandler) Check(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
		Cache:     "disabled",
	}
	status := http.StatusOK

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.cache.HealthCheck(ctx); err != nil {
			resp.Status = "unhealthy"
			resp.Cache = "unavailable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Cache = "ok"
		}
	}

	c.PureJSON(status, resp)
}
