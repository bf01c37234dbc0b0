package testutils

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRecorder(t *testing.T) {
	t.Parallel()

	rec, logger := NewLogRecorder()
	child := logger.With(slog.String("component", "test"))

	logger.Info("first", "n", 1)
	child.Warn("second")

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, slog.LevelInfo, entries[0].Level)
	assert.EqualValues(t, 1, entries[0].Attrs["n"])

	second, ok := rec.Find("second")
	require.True(t, ok)
	assert.Equal(t, "test", second.Attrs["component"])

	_, ok = rec.Find("missing")
	assert.False(t, ok)
}
