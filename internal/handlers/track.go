package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sebasr/f1-telemetry-viewer/internal/middleware"
	"github.com/sebasr/f1-telemetry-viewer/internal/plot"
	"github.com/sebasr/f1-telemetry-viewer/internal/view"
)

// TrackHandler renders the current session path as SVG
type TrackHandler struct {
	store *view.Store
}

// NewTrackHandler creates a new track outline handler
func NewTrackHandler(store *view.Store) *TrackHandler {
	return &TrackHandler{store: store}
}

// SVG handles GET /track.svg?size=N
func (h *TrackHandler) SVG(c *gin.Context) {
	sess, _ := h.store.Get(middleware.MustGetSessionID(c))
	if !sess.Outcome.OK() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No telemetry loaded"})
		return
	}

	size := plot.DefaultSVGSize
	if s := c.Query("size"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid size"})
			return
		}
		size = v
	}

	out, err := plot.TrackSVG(sess.Outcome.Path, size)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Path too short to draw"})
		return
	}

	c.Data(http.StatusOK, "image/svg+xml", out)
}
