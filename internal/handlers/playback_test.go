package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
	"github.com/sebasr/f1-telemetry-viewer/internal/playback"
	"github.com/sebasr/f1-telemetry-viewer/internal/view"
)

func dialPlayback(t *testing.T, srv *httptest.Server, cookie *http.Cookie) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/playback"
	header := http.Header{}
	header.Add("Cookie", cookie.String())

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readPosition(t *testing.T, conn *websocket.Conn) playback.Position {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var pos playback.Position
	require.NoError(t, conn.ReadJSON(&pos))
	return pos
}

func TestPlaybackHandler_Stream(t *testing.T) {
	store := view.NewStore(0)
	srv := httptest.NewServer(setupViewRouter(store, newSuccessPipeline()))
	defer srv.Close()

	cookie := sessionFor(store)
	store.Record(cookie.Value, successOutcome(models.DefaultLoadRequest()))

	conn := dialPlayback(t, srv, cookie)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("play")))

	first := readPosition(t, conn)
	assert.Equal(t, playback.Position{Index: 1, X: 3, Y: 2}, first)

	last := readPosition(t, conn)
	assert.Equal(t, playback.Position{Index: 2, X: 6, Y: 0, Done: true}, last)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("restart")))
	assert.Equal(t, 1, readPosition(t, conn).Index)
}

func TestPlaybackHandler_NothingLoaded(t *testing.T) {
	store := view.NewStore(0)
	srv := httptest.NewServer(setupViewRouter(store, newSuccessPipeline()))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/playback"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
