package sunbind

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunbind/sunbind/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, types.DefaultConfig(), cfg)
	require.NoError(t, ValidateConfig(cfg))
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "sunbind.toml", `
[log]
level = "debug"

[checkpoint]
backend = "goleveldb"
dir = "/tmp/sunbind"
every = 10

[engine]
step_size = 0.01
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "goleveldb", cfg.Checkpoint.Backend)
	assert.Equal(t, 10, cfg.Checkpoint.Every)
	assert.Equal(t, 0.01, cfg.Engine.StepSize)
	// untouched keys keep their defaults
	assert.Equal(t, "trajectory", cfg.Checkpoint.Name)
	assert.Equal(t, 20, cfg.Engine.NlsMaxIters)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "sunbind.yml", `
metrics:
  enabled: true
  listen: "0.0.0.0:9100"
engine:
  max_retries: 2
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0.0.0.0:9100", cfg.Metrics.Listen)
	assert.Equal(t, 2, cfg.Engine.MaxRetries)
	assert.Equal(t, 1e-3, cfg.Engine.StepSize)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]struct {
		name    string
		content string
	}{
		"unknown extension": {"sunbind.ini", "x=1"},
		"bad toml":          {"bad.toml", "[log\nlevel="},
		"bad level":         {"level.toml", "[log]\nlevel = \"loud\"\n"},
		"leveldb no dir":    {"dir.yaml", "checkpoint:\n  backend: goleveldb\n"},
		"zero step":         {"step.yaml", "engine:\n  step_size: 0\n"},
		"unknown backend":   {"backend.toml", "[checkpoint]\nbackend = \"rocks\"\n"},
		"metrics no listen": {"metrics.toml", "[metrics]\nenabled = true\nlisten = \"\"\n"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, tc.name, tc.content))
			require.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigSchema(t *testing.T) {
	bz, err := ConfigSchema()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(bz, &decoded))
	props, ok := decoded["properties"].(map[string]any)
	require.True(t, ok, "expanded schema has top level properties")
	for _, key := range []string{"log", "metrics", "checkpoint", "engine"} {
		assert.Contains(t, props, key)
	}
	assert.Contains(t, string(bz), "step_size")
}
