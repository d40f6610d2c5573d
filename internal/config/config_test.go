package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasklist.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, ":42069", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "To-Do List", cfg.UI.Title)
	assert.Equal(t, "Add a new task...", cfg.UI.Placeholder)
	assert.Equal(t, 256, cfg.UI.CharLimit)
	require.NotNil(t, cfg.Export.Enabled)
	assert.True(t, *cfg.Export.Enabled)
	assert.Empty(t, cfg.Seed)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
log:
  format: TEXT
ui:
  title: Chores
  char_limit: 80
export:
  enabled: false
seed:
  - Buy milk
  - Call Bob
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "Chores", cfg.UI.Title)
	assert.Equal(t, 80, cfg.UI.CharLimit)
	assert.False(t, *cfg.Export.Enabled)
	assert.Equal(t, "To-Do List", cfg.Export.Title)
	assert.Equal(t, []string{"Buy milk", "Call Bob"}, cfg.Seed)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TASKLIST_ADDR", ":8080")
	t.Setenv("TASKLIST_LOG_FORMAT", "text")
	t.Setenv("TASKLIST_DEV_STATIC", "yes")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.Server.DevStatic)
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("TASKLIST_CONFIG", "")
	assert.Equal(t, DefaultPath, PathFromEnv(DefaultPath))

	t.Setenv("TASKLIST_CONFIG", "/etc/tasklist.yml")
	assert.Equal(t, "/etc/tasklist.yml", PathFromEnv(DefaultPath))
}
