package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storytime.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesAndEnvExpansion(t *testing.T) {
	t.Setenv("STORYTIME_TEST_DIR", "/tmp/stories")

	cfg, err := Load(writeConfig(t, `
database:
  path: ${STORYTIME_TEST_DIR}/db.sqlite
storage:
  key: drafts
logging:
  level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/stories/db.sqlite", cfg.Database.Path)
	assert.Equal(t, "drafts", cfg.Storage.Key)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, DefaultExportDir, cfg.Export.Dir)
}

func TestLoad_UnsetEnvFailsValidation(t *testing.T) {
	_, err := Load(writeConfig(t, "storage:\n  key: \"${STORYTIME_TEST_UNSET_VAR}\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.key is required")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")

	_, err = Load(writeConfig(t, "database: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")

	_, err = Load(writeConfig(t, "logging:\n  level: loud\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}
