package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected zapcore.Level
	}{
		{"debug", "debug", zapcore.DebugLevel},
		{"info", "info", zapcore.InfoLevel},
		{"warn", "warn", zapcore.WarnLevel},
		{"warning variant", "warning", zapcore.WarnLevel},
		{"error", "error", zapcore.ErrorLevel},
		{"mixed case", "Debug", zapcore.DebugLevel},
		{"whitespace", "  info  ", zapcore.InfoLevel},
		{"empty defaults to info", "", zapcore.InfoLevel},
		{"unknown defaults to info", "loud", zapcore.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parseLevel(tc.input))
		})
	}
}

func TestInitAndHelpers(t *testing.T) {
	original := zap.L()
	defer zap.ReplaceGlobals(original)

	require.NotPanics(t, func() {
		Init(&Config{Level: "debug", Env: "test", ServiceName: "sessionkit-test"})
	})

	core, logs := observer.New(zap.DebugLevel)
	zap.ReplaceGlobals(zap.New(core))

	LogDebug("debug message")
	LogInfo("info message", zap.String("flavor", "email"))
	LogInfof("user %s resolved", "golfer01")
	LogWarn("warn message")
	LogError("error message")

	entries := logs.All()
	require.Len(t, entries, 5)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "user golfer01 resolved", entries[2].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[4].Level)

	fields := entries[1].Context
	require.Len(t, fields, 1)
	assert.Equal(t, "flavor", fields[0].Key)

	require.NotPanics(t, Sync)
}
