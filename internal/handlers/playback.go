package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sebasr/f1-telemetry-viewer/internal/middleware"
	"github.com/sebasr/f1-telemetry-viewer/internal/playback"
	"github.com/sebasr/f1-telemetry-viewer/internal/plot"
	"github.com/sebasr/f1-telemetry-viewer/internal/view"
)

var upgrader = websocket.Upgrader{} // use default options

// PlaybackHandler streams the current session's frames over a websocket
type PlaybackHandler struct {
	store    *view.Store
	interval time.Duration
	logger   *zap.Logger
}

// NewPlaybackHandler creates a playback handler pushing one frame per interval
func NewPlaybackHandler(store *view.Store, interval time.Duration, logger *zap.Logger) *PlaybackHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = plot.DefaultFrameDuration
	}
	return &PlaybackHandler{
		store:    store,
		interval: interval,
		logger:   logger.Named("playback"),
	}
}

// Stream handles GET /ws/playback. Clients send "play", "pause" or "restart" and
// receive a position message for every frame shown.
func (h *PlaybackHandler) Stream(c *gin.Context) {
	sess, _ := h.store.Get(middleware.MustGetSessionID(c))
	if !sess.Outcome.OK() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "No telemetry loaded"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	player := playback.NewPlayer(sess.Outcome.Frames)
	commands := make(chan playback.Command)
	closed := make(chan struct{})

	go func() {
		defer close(closed)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}
			cmd, err := playback.ParseCommand(string(message))
			if err != nil {
				h.logger.Debug("ignoring message", zap.ByteString("message", message))
				continue
			}
			select {
			case commands <- cmd:
			case <-c.Request.Context().Done():
				return
			}
		}
	}()

	t := time.NewTicker(h.interval)
	defer t.Stop()
	for {
		select {
		case cmd := <-commands:
			player.Apply(cmd)
		case <-t.C:
			pos, ok := player.Tick()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(pos); err != nil {
				h.logger.Debug("write failed", zap.Error(err))
				return
			}
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
