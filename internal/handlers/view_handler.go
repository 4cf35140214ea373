package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sebasr/f1-telemetry-viewer/internal/drivers"
	"github.com/sebasr/f1-telemetry-viewer/internal/middleware"
	"github.com/sebasr/f1-telemetry-viewer/internal/models"
	"github.com/sebasr/f1-telemetry-viewer/internal/plot"
	"github.com/sebasr/f1-telemetry-viewer/internal/view"
)

// LoadPipeline runs a load request to completion
type LoadPipeline interface {
	Load(ctx context.Context, req models.LoadRequest) *view.Outcome
}

// ViewHandler serves the form page and form submissions
type ViewHandler struct {
	store    *view.Store
	pipeline LoadPipeline
	defaults models.LoadRequest
	logger   *zap.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(store *view.Store, pipeline LoadPipeline, defaults models.LoadRequest, logger *zap.Logger) *ViewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ViewHandler{
		store:    store,
		pipeline: pipeline,
		defaults: defaults,
		logger:   logger.Named("view"),
	}
}

type pageData struct {
	Request      models.LoadRequest
	SessionTypes []models.SessionType
	Drivers      []string
	MinYear      int
	MaxYear      int
	MinStride    int
	MaxStride    int
	StrideStep   int
	Requested    bool
	Outcome      *view.Outcome
	Figure       *plot.Figure
	ErrorMessage string
}

// Index handles GET /
func (h *ViewHandler) Index(c *gin.Context) {
	id := middleware.MustGetSessionID(c)
	sess, _ := h.store.Get(id)

	data := pageData{
		Request:      h.defaults,
		SessionTypes: models.SessionTypes,
		Drivers:      driverOptions(),
		MinYear:      models.MinYear,
		MaxYear:      models.MaxYear,
		MinStride:    models.MinStride,
		MaxStride:    models.MaxStride,
		StrideStep:   models.StrideStep,
		Requested:    sess.State == view.Requested,
		Outcome:      sess.Outcome,
	}
	if sess.Outcome != nil {
		data.Request = sess.Outcome.Request
		if sess.Outcome.OK() {
			data.Figure = sess.Outcome.Figure
		} else {
			data.ErrorMessage = view.ErrorMessage
		}
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// Load handles POST /load. The outcome replaces the session's previous one and the
// visitor is redirected back to the page.
func (h *ViewHandler) Load(c *gin.Context) {
	id := middleware.MustGetSessionID(c)

	var outcome *view.Outcome
	req := h.defaults
	if err := c.ShouldBind(&req); err != nil {
		outcome = view.Rejected(req, err)
	} else {
		outcome = h.pipeline.Load(c.Request.Context(), req)
	}
	if !outcome.OK() {
		h.logger.Info("load failed",
			zap.String("session", id),
			zap.String("kind", outcome.Kind()),
			zap.Error(outcome.Err))
	}
	h.store.Record(id, outcome)

	c.Redirect(http.StatusSeeOther, "/")
}

func driverOptions() []string {
	caser := cases.Title(language.English)
	names := drivers.Surnames()
	for i, n := range names {
		names[i] = caser.String(n)
	}
	return names
}
