package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesRotatedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trainer.log")
	log, err := New(Options{Level: "debug", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Debug("position opened", zap.Int64("id", 1))
	log.Info("position closed", zap.String("reason", "StopLoss"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "position closed", entry["msg"])
	assert.Equal(t, "StopLoss", entry["reason"])
}

func TestNewLevelFiltering(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trainer.log")
	log, err := New(Options{Level: "warn", File: path})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNewDefaultsToStderr(t *testing.T) {
	t.Parallel()

	log, err := New(Options{Level: "bogus"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.InfoLevel))
	assert.False(t, log.Core().Enabled(zap.DebugLevel))
}
