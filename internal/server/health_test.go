package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getHealth(t *testing.T, router http.Handler, remoteAddr string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealthEndpoint(t *testing.T) {
	router := New(newTestDeps())

	t.Run("reports healthy with an RFC3339 timestamp", func(t *testing.T) {
		before := time.Now().UTC().Add(-time.Second)
		w, body := getHealth(t, router, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "1.0.0", body["version"])
		assert.Equal(t, "disabled", body["cache"])

		ts, err := time.Parse(time.RFC3339, body["timestamp"].(string))
		require.NoError(t, err)
		assert.True(t, ts.After(before))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps a caller supplied request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		req.Header.Set("X-Request-ID", "race-weekend-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "race-weekend-42", w.Header().Get("X-Request-ID"))
	})

	t.Run("serves concurrent probes", func(t *testing.T) {
		var wg sync.WaitGroup
		codes := make(chan int, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
				req.RemoteAddr = "192.0.3.1:12345"
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				codes <- w.Code
			}()
		}
		wg.Wait()
		close(codes)
		for code := range codes {
			assert.Equal(t, http.StatusOK, code)
		}
	})

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method+" is not routed", func(t *testing.T) {
			req := httptest.NewRequest(method, "/api/v1/health", nil)
			req.RemoteAddr = "192.0.4.1:12345"
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNotFound, w.Code)
		})
	}
}

type failingCache struct{}

func (failingCache) HealthCheck(context.Context) error {
	return errors.New("database is closed")
}

func TestHealthEndpoint_CacheUnavailable(t *testing.T) {
	deps := newTestDeps()
	deps.Cache = failingCache{}

	w, body := getHealth(t, New(deps), "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "unavailable", body["cache"])
}
