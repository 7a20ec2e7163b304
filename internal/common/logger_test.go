package common

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	require.NoError(t, SetupLogger(slog.LevelDebug, "json"))
	_, isJSON := slog.Default().Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)

	require.NoError(t, SetupLogger(slog.LevelInfo, "console"))
	_, isText := slog.Default().Handler().(*slog.TextHandler)
	assert.True(t, isText)

	err := SetupLogger(slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoggerOrDefault(t *testing.T) {
	assert.Same(t, slog.Default(), LoggerOrDefault(nil))

	custom := slog.New(slog.DiscardHandler)
	assert.Same(t, custom, LoggerOrDefault(custom))
}
