package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/sebasr/f1-telemetry-viewer/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LogConfig
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{name: "production info", cfg: config.LogConfig{Level: "info", Format: "production"}, wantLevel: zapcore.InfoLevel},
		{name: "development debug", cfg: config.LogConfig{Level: "debug", Format: "development"}, wantLevel: zapcore.DebugLevel},
		{name: "warn level", cfg: config.LogConfig{Level: "warn", Format: "production"}, wantLevel: zapcore.WarnLevel},
		{name: "unknown level", cfg: config.LogConfig{Level: "verbose", Format: "production"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}
