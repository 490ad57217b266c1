package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0},
		{name: "Console output mode", jsonOutput: false, verbosity: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			assert.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)

			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
	assert.Equal(t, "Info (-v)", LevelName(1))
}

func TestLoggerFromContext_AddsRunID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := Logger
	Logger = zap.New(core).Sugar()
	defer func() { Logger = previous }()

	ctx := WithRunID(context.Background(), "run-123")
	LoggerFromContext(ctx).Infow("module written", FieldCount, 3)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "run-123", fields[FieldRunID])
	assert.EqualValues(t, 3, fields[FieldCount])
}

func TestComponentLogger_TagsComponent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := Logger
	Logger = zap.New(core).Sugar()
	defer func() { Logger = previous }()

	ComponentLogger("modgen").Debugw("wrote file")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "modgen", entry.LoggerName)
	assert.Equal(t, "modgen", entry.ContextMap()[FieldComponent])
}

func TestLoggerFromContext_WithoutRunID(t *testing.T) {
	assert.Same(t, Logger, LoggerFromContext(context.Background()))
}
