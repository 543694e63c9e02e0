package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/huynhanx03/go-keybatch/pkg/settings"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"", zapcore.InfoLevel, zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			log, err := New(settings.Logger{LogLevel: tt.level})
			require.NoError(t, err)

			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.muted))
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(settings.Logger{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batcher.log")

	log, err := New(settings.Logger{LogLevel: "info", FileLogName: path})
	require.NoError(t, err)

	log.Info("batch delivered")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"msg":"batch delivered"`))
}

func TestRotatorDefaults(t *testing.T) {
	l := rotator(settings.Logger{FileLogName: "x.log"})
	assert.Equal(t, defaultMaxSize, l.MaxSize)
	assert.Equal(t, defaultMaxBackups, l.MaxBackups)
	assert.Equal(t, defaultMaxAge, l.MaxAge)

	l = rotator(settings.Logger{FileLogName: "x.log", MaxSize: 5, MaxBackups: 1, MaxAge: 2, Compress: true})
	assert.Equal(t, 5, l.MaxSize)
	assert.Equal(t, 1, l.MaxBackups)
	assert.Equal(t, 2, l.MaxAge)
	assert.True(t, l.Compress)
}
