package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sunbind/sunbind/types"
)

func TestConsoleOnly(t *testing.T) {
	var buf bytes.Buffer
	log, closeLog, err := build(types.LogConfig{Level: "warn"}, zapcore.AddSync(&buf))
	require.NoError(t, err)
	defer closeLog()

	log.Info("dropped")
	log.Warn("hook failed", zap.String("slot", "rhs"))
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "hook failed", entry["msg"])
	assert.Equal(t, "rhs", entry["slot"])
	assert.Equal(t, "warn", entry["level"])
}

func TestFileCore(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "log", "sunbind.log")
	log, closeLog, err := build(types.LogConfig{File: path, MaxSizeMB: 1}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Info("table released", zap.String("kind", "integrator"))
	require.NoError(t, closeLog())
	require.NoError(t, closeLog())

	bz, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(bz), `"kind":"integrator"`)
	assert.Contains(t, buf.String(), "table released")
}

func TestBadLevel(t *testing.T) {
	_, _, err := New(types.LogConfig{Level: "loud"})
	require.Error(t, err)
}
