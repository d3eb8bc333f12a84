package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level      string
		enabled    slog.Level
		suppressed slog.Level
	}{
		{level: "debug", enabled: slog.LevelDebug, suppressed: slog.LevelDebug - 1},
		{level: "info", enabled: slog.LevelInfo, suppressed: slog.LevelDebug},
		{level: "warn", enabled: slog.LevelWarn, suppressed: slog.LevelInfo},
		{level: "error", enabled: slog.LevelError, suppressed: slog.LevelWarn},
		{level: "bogus", enabled: slog.LevelInfo, suppressed: slog.LevelDebug},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			t.Parallel()
			logger := newLogger(tc.level, "text", &bytes.Buffer{})

			assert.True(t, logger.Enabled(context.Background(), tc.enabled))
			assert.False(t, logger.Enabled(context.Background(), tc.suppressed))
		})
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	buf := &bytes.Buffer{}
	logger := newLogger("info", "json", buf)

	// --- Act ---
	logger.Info("hello", "run_id", "abc")

	// --- Assert ---
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "abc", record["run_id"])
}
