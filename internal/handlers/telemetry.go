package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
	"github.com/sebasr/f1-telemetry-viewer/internal/plot"
	"github.com/sebasr/f1-telemetry-viewer/internal/telemetry"
	"github.com/sebasr/f1-telemetry-viewer/internal/view"
)

// TelemetryHandler serves loads as JSON
type TelemetryHandler struct {
	pipeline LoadPipeline
	defaults models.LoadRequest
}

// NewTelemetryHandler creates a new telemetry API handler
func NewTelemetryHandler(pipeline LoadPipeline, defaults models.LoadRequest) *TelemetryHandler {
	return &TelemetryHandler{
		pipeline: pipeline,
		defaults: defaults,
	}
}

// TelemetryResponse is the body of a successful load
type TelemetryResponse struct {
	Stats      models.RaceStats         `json:"stats"`
	RawSamples int                      `json:"rawSamples"`
	Samples    []models.TelemetrySample `json:"samples"`
	Frames     int                      `json:"frames"`
	Figure     *plot.Figure             `json:"figure"`
}

// ErrorResponse is the body of a failed load
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Get handles GET /api/v1/telemetry
func (h *TelemetryHandler) Get(c *gin.Context) {
	req := h.defaults
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid query parameters",
			Kind:  "InvalidRequest",
		})
		return
	}

	outcome := h.pipeline.Load(c.Request.Context(), req)
	if !outcome.OK() {
		_ = c.Error(outcome.Err)
		c.JSON(statusForError(outcome.Err), ErrorResponse{
			Error: view.ErrorMessage,
			Kind:  outcome.Kind(),
		})
		return
	}

	c.JSON(http.StatusOK, TelemetryResponse{
		Stats:      *outcome.Stats,
		RawSamples: outcome.RawSamples,
		Samples:    outcome.Path,
		Frames:     len(outcome.Frames),
		Figure:     outcome.Figure,
	})
}

// statusForError maps load failures to HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.Is(err, view.ErrInvalidRequest), errors.Is(err, telemetry.ErrDriverNotFound):
		return http.StatusBadRequest
	case errors.Is(err, telemetry.ErrNoResultsForDriver), errors.Is(err, telemetry.ErrEmptyTelemetry):
		return http.StatusNotFound
	case errors.Is(err, telemetry.ErrSessionLoad):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
