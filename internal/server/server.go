// Package server provides HTTP server setup and configuration.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"

	"github.com/sebasr/f1-telemetry-viewer/internal/config"
	"github.com/sebasr/f1-telemetry-viewer/internal/handlers"
	"github.com/sebasr/f1-telemetry-viewer/internal/middleware"
	"github.com/sebasr/f1-telemetry-viewer/internal/models"
	"github.com/sebasr/f1-telemetry-viewer/internal/view"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check if request ID already exists in header
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		// Set request ID in context and response header
		c.Set("RequestID", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// NewRateLimitMiddleware creates a rate limiting middleware using ulule/limiter.
// It allows 100 requests per minute per IP address.
func NewRateLimitMiddleware() gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}

	store := memory.NewStore()
	instance := limiter.New(store, rate)

	return mgin.NewMiddleware(instance)
}

// Dependencies holds all dependencies needed to create a server
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Store    *view.Store
	Pipeline handlers.LoadPipeline
	Cache    handlers.HealthChecker // Optional: nil when the provider cache is disabled
}

// New creates a new Gin router with all routes configured
func New(deps *Dependencies) *gin.Engine {
	// Release mode keeps gin's debug route dump out of the logs
	gin.SetMode(gin.ReleaseMode)

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger, "/api/v1/health"))

	// Add CORS middleware for API consumers on other origins
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(RequestIDMiddleware())
	router.Use(NewRateLimitMiddleware())
	// Websocket upgrades must not go through the gzip writer
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/ws/"})))

	router.SetHTMLTemplate(handlers.Templates())

	defaults := models.DefaultLoadRequest()
	defaults.Stride = deps.Config.Viewer.DefaultStride

	loadLimiter := middleware.NewLoadRateLimitMiddlewareWithConfig(
		deps.Config.Server.LoadRateLimit,
		deps.Config.Server.LoadRatePeriod,
	)

	healthHandler := handlers.NewHealthHandler(deps.Cache)
	viewHandler := handlers.NewViewHandler(deps.Store, deps.Pipeline, defaults, logger)
	telemetryHandler := handlers.NewTelemetryHandler(deps.Pipeline, defaults)
	trackHandler := handlers.NewTrackHandler(deps.Store)
	playbackHandler := handlers.NewPlaybackHandler(deps.Store, deps.Config.Viewer.FrameDuration, logger)

	// Pages scoped to the visitor's view session
	pages := router.Group("/", middleware.ViewSession(deps.Store))
	{
		pages.GET("/", viewHandler.Index)
		pages.POST("/load", loadLimiter, viewHandler.Load)
		pages.GET("/track.svg", trackHandler.SVG)
		pages.GET("/ws/playback", playbackHandler.Stream)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler.Check)
		v1.GET("/telemetry", loadLimiter, telemetryHandler.Get)
	}

	return router
}
