package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"bookcatalog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNewZap_JSONToStdout(t *testing.T) {
	var buf bytes.Buffer
	log := newZap(config.LogConfig{Level: "info", Format: "json"}, zapcore.AddSync(&buf))

	log.Debug("hidden")
	log.Info("book added", zap.String("book_id", "1"))
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "book added", entry["msg"])
	assert.Equal(t, "1", entry["book_id"])
}

func TestNewZap_RotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookcatalog.log")
	var buf bytes.Buffer
	log := newZap(config.LogConfig{Level: "debug", Format: "console", File: path, FileMaxSize: 1}, zapcore.AddSync(&buf))

	log.Debug("to both sinks")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to both sinks"`)
	assert.Contains(t, buf.String(), "to both sinks")
}
