package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/sebasr/f1-telemetry-viewer/internal/middleware"
	"github.com/sebasr/f1-telemetry-viewer/internal/models"
	"github.com/sebasr/f1-telemetry-viewer/internal/plot"
	"github.com/sebasr/f1-telemetry-viewer/internal/telemetry"
	"github.com/sebasr/f1-telemetry-viewer/internal/view"
)

// mockPipeline is a LoadPipeline whose behavior is set per test
type mockPipeline struct {
	LoadFunc func(ctx context.Context, req models.LoadRequest) *view.Outcome
	requests []models.LoadRequest
}

func (m *mockPipeline) Load(ctx context.Context, req models.LoadRequest) *view.Outcome {
	m.requests = append(m.requests, req)
	return m.LoadFunc(ctx, req)
}

func successOutcome(req models.LoadRequest) *view.Outcome {
	path := []models.TelemetrySample{{X: 0, Y: 4}, {X: 3, Y: 2}, {X: 6, Y: 0}}
	frames := telemetry.BuildFrames(path)
	return &view.Outcome{
		Request: req,
		Stats: &models.RaceStats{
			Driver:           "Max VERSTAPPEN",
			Team:             "Red Bull Racing",
			GridPosition:     1,
			FinishPosition:   2,
			Points:           18,
			FastestLapTime:   "01:22.400",
			FastestLapNumber: 41,
		},
		RawSamples: 150,
		Path:       path,
		Frames:     frames,
		Figure:     plot.NewFigure(path, frames, 30*time.Millisecond),
		LoadedAt:   time.Now(),
	}
}

func failedOutcome(req models.LoadRequest, err error) *view.Outcome {
	return &view.Outcome{Request: req, Err: err, LoadedAt: time.Now()}
}

func newSuccessPipeline() *mockPipeline {
	return &mockPipeline{LoadFunc: func(_ context.Context, req models.LoadRequest) *view.Outcome {
		return successOutcome(req)
	}}
}

// setupViewRouter wires the session-scoped routes the way the server does
func setupViewRouter(store *view.Store, pipeline LoadPipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(Templates())

	viewHandler := NewViewHandler(store, pipeline, models.DefaultLoadRequest(), nil)
	trackHandler := NewTrackHandler(store)
	playbackHandler := NewPlaybackHandler(store, time.Millisecond, nil)

	pages := router.Group("/", middleware.ViewSession(store))
	pages.GET("/", viewHandler.Index)
	pages.POST("/load", viewHandler.Load)
	pages.GET("/track.svg", trackHandler.SVG)
	pages.GET("/ws/playback", playbackHandler.Stream)
	return router
}

// sessionFor creates a session and returns its cookie
func sessionFor(store *view.Store) *http.Cookie {
	sess := store.Create()
	return &http.Cookie{Name: middleware.SessionCookie, Value: sess.ID}
}

func serve(t *testing.T, router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.NotNil(t, w)
	return w
}
