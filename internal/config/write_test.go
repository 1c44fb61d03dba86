package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinebrowse", "config.toml")

	require.NoError(t, WriteDefault(path), "WriteDefault failed")

	content, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read written file")

	assert.Contains(t, string(content), "[tmdb]")
	assert.Contains(t, string(content), "[ui]")
	assert.Contains(t, string(content), "${TMDB_API_KEY}")
}

func TestWriteDefault_NoOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))

	err := WriteDefault(path)
	require.ErrorIs(t, err, fs.ErrExist)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(content), "existing file untouched")
}

func TestWriteDefault_LoadsWithEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(path))
	t.Setenv("TMDB_API_KEY", "test-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.TMDB.APIKey)
	assert.Equal(t, *Default(), withoutKey(*cfg))
}

func withoutKey(c Config) Config {
	c.TMDB.APIKey = ""
	return c
}

func TestConfig_WriteRoundTrip(t *testing.T) {
	cfg := validConfig()
	cfg.UI.DarkMode = true
	cfg.UI.RotationInterval = 3 * time.Second

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, cfg.Write(path), "Write failed")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
