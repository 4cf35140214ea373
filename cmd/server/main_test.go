package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sebasr/f1-telemetry-viewer/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Server:   config.ServerConfig{Port: "0", LoadRateLimit: 20, LoadRatePeriod: time.Minute},
		Provider: config.ProviderConfig{BaseURL: "http://127.0.0.1:0", RequestsPerSecond: 3},
		Cache: config.CacheConfig{
			Driver:                config.CacheDriverSQLite,
			DSN:                   filepath.Join(dir, "cache.db"),
			MaxConnections:        1,
			MaxIdleConnections:    1,
			ConnectionMaxLifetime: time.Minute,
		},
		Viewer: config.ViewerConfig{DefaultStride: 50, FrameDuration: 30 * time.Millisecond},
		Log:    config.LogConfig{Level: "info", Format: "production"},
	}
}

func TestRun_InitFailureIsReturned(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	cfg.Cache.DSN = filepath.Join(blocker, "cache.db")

	listened := false
	err := run(context.Background(), cfg, zap.NewNop(), func(http.Handler, string) error {
		listened = true
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize")
	assert.False(t, listened)
}

func TestRun_ServesAndClosesCache(t *testing.T) {
	cfg := testConfig(t)
	core, logs := observer.New(zap.InfoLevel)

	listenErr := errors.New("listener closed")
	err := run(context.Background(), cfg, zap.New(core), func(router http.Handler, addr string) error {
		assert.Equal(t, ":0", addr)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		return listenErr
	})

	assert.ErrorIs(t, err, listenErr)
	assert.Equal(t, 1, logs.FilterMessage("Starting server").Len())
	assert.Zero(t, logs.FilterMessage("Error closing provider cache").Len())
}
