package server

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGzipResponses(t *testing.T) {
	router := New(newTestDeps())

	tests := []struct {
		name           string
		acceptEncoding string
		expectGzip     bool
	}{
		{"client accepts gzip", "gzip", true},
		{"client without gzip", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/telemetry", nil)
			req.RemoteAddr = "192.0.8.1:12345"
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)

			var body io.Reader = w.Body
			if tt.expectGzip {
				assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
				gz, err := gzip.NewReader(w.Body)
				require.NoError(t, err)
				defer gz.Close()
				body = gz
			} else {
				assert.Empty(t, w.Header().Get("Content-Encoding"))
			}

			var resp map[string]interface{}
			require.NoError(t, json.NewDecoder(body).Decode(&resp))
			assert.Contains(t, resp, "figure")
		})
	}
}
