package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tingeapp/tinge/internal/config"
)

func jsonCfg(level string) config.LoggingConfig {
	return config.LoggingConfig{Level: level, Format: "json"}
}

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLoggerWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(jsonCfg("info"), &buf)

	logger.Info("theme applied", slog.String("theme", "harbor"))

	entry := logLine(t, &buf)
	assert.Equal(t, "theme applied", entry["msg"])
	assert.Equal(t, "harbor", entry["theme"])
}

func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(jsonCfg("warn"), &buf)

	logger.Info("should be dropped")
	assert.Empty(t, buf.String())

	logger.Warn("should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestNewLoggerWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(config.LoggingConfig{Level: "info", Format: "text"}, &buf)

	logger.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNewLoggerWithWriter_CustomTimeFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := jsonCfg("info")
	cfg.TimeFormat = "2006-01-02"
	logger := NewLoggerWithWriter(cfg, &buf)

	logger.Info("dated")
	entry := logLine(t, &buf)
	assert.Len(t, entry["time"], len("2006-01-02"))
}

func TestNewLoggerWithWriter_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(jsonCfg("info"), &buf)

	type creds struct {
		User     string
		Password string
	}
	logger.Info("connecting", slog.Any("creds", creds{User: "alice", Password: "hunter2"}))

	out := buf.String()
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "hunter2")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("unspecified"))
}

func TestWithComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(jsonCfg("info"), &buf)

	WithError(WithComponent(logger, "switcher"), assert.AnError).Info("failed")

	entry := logLine(t, &buf)
	assert.Equal(t, "switcher", entry["component"])
	assert.Equal(t, assert.AnError.Error(), entry["error"])
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := NewLoggerWithWriter(jsonCfg("info"), &bytes.Buffer{})
	ctx := ContextWithLogger(context.Background(), logger)
	assert.Same(t, logger, LoggerFromContext(ctx))
	assert.NotNil(t, LoggerFromContext(context.Background()))
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}
