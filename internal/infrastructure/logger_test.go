package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reporttable/internal/config"
)

func readLastLogEntry(t *testing.T, content []byte) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestInitializeLogger(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	cfg := config.LoggingConfig{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: logFile,
	}

	logger, err := InitializeLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())

	logger.Info("test message", "key", "value")
	require.NoError(t, CloseLogFile())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)

	entry := readLastLogEntry(t, content)
	assert.Equal(t, "test message", entry["msg"])
	assert.Equal(t, "value", entry["key"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestInitializeLogger_OnlyOnce(t *testing.T) {
	ResetLoggerForTesting()
	defer ResetLoggerForTesting()

	dir := t.TempDir()
	first, err := InitializeLogger(config.LoggingConfig{Level: "info", Output: "file", FilePath: filepath.Join(dir, "a.log")})
	require.NoError(t, err)

	second, err := InitializeLogger(config.LoggingConfig{Level: "debug", Output: "file", FilePath: filepath.Join(dir, "b.log")})
	require.NoError(t, err)

	assert.Same(t, first, second)
	_, statErr := os.Stat(filepath.Join(dir, "b.log"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunIDInjection(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "debug")

	ctx := WithJob(WithRunID(context.Background(), "run-123"), "table-one")
	logger.InfoContext(ctx, "with run id")

	entry := readLastLogEntry(t, buf.Bytes())
	assert.Equal(t, "run-123", entry["run_id"])
	assert.Equal(t, "table-one", entry["job"])

	buf.Reset()
	logger.With("component", "parser").InfoContext(ctx, "derived logger")
	entry = readLastLogEntry(t, buf.Bytes())
	assert.Equal(t, "run-123", entry["run_id"])
	assert.Equal(t, "parser", entry["component"])
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		configured string
		logDebug   bool
		logWarn    bool
	}{
		{configured: "debug", logDebug: true, logWarn: true},
		{configured: "info", logDebug: false, logWarn: true},
		{configured: "warning", logDebug: false, logWarn: true},
		{configured: "error", logDebug: false, logWarn: false},
		{configured: "bogus", logDebug: false, logWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.configured, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.configured)

			logger.Debug("debug line")
			assert.Equal(t, tt.logDebug, strings.Contains(buf.String(), "debug line"))

			logger.Warn("warn line")
			assert.Equal(t, tt.logWarn, strings.Contains(buf.String(), "warn line"))
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRunID(ctx))
	assert.Empty(t, GetJob(ctx))

	ctx = EnsureRunID(ctx)
	runID := GetRunID(ctx)
	assert.Len(t, runID, 36)

	// existing run id is kept
	assert.Equal(t, runID, GetRunID(EnsureRunID(ctx)))
	assert.NotEqual(t, GenerateRunID(), GenerateRunID())
}

func TestWithErrorAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info")

	assert.Same(t, logger, WithError(logger, nil))

	WithComponent(WithError(logger, assert.AnError), "builder").Error("failed")
	entry := readLastLogEntry(t, buf.Bytes())
	assert.Equal(t, assert.AnError.Error(), entry["error"])
	assert.Equal(t, "builder", entry["component"])
}
