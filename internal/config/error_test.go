package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError_Error_Empty(t *testing.T) {
	e := &ConfigError{Path: "/etc/cinebrowse/config.toml"}
	assert.Empty(t, e.Error())
	assert.False(t, e.HasErrors())
}

func TestConfigError_Error_MissingVars(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/cinebrowse/config.toml",
		Missing: []string{"TMDB_API_KEY", "SECRET"},
	}
	got := e.Error()
	assert.Contains(t, got, "/etc/cinebrowse/config.toml")
	assert.Contains(t, got, "missing environment variables")
	assert.Contains(t, got, "TMDB_API_KEY, SECRET")
	assert.True(t, e.HasErrors())
}

func TestConfigError_Error_ValidationErrors(t *testing.T) {
	e := &ConfigError{
		Errors: []string{"tmdb.timeout: must be positive", "log.level: invalid"},
	}
	got := e.Error()
	assert.Contains(t, got, "validation failed")
	assert.Contains(t, got, "  - tmdb.timeout")
	assert.NotContains(t, got, "config :", "no path header without a file")
}

func TestConfigError_Error_Both(t *testing.T) {
	e := &ConfigError{
		Path:    "config.toml",
		Missing: []string{"TMDB_API_KEY"},
		Errors:  []string{"ui.preview_size: invalid"},
	}
	got := e.Error()
	assert.Contains(t, got, "missing environment variables")
	assert.Contains(t, got, "validation failed")
}

func TestConfigError_OrNil(t *testing.T) {
	assert.NoError(t, (&ConfigError{Path: "x"}).orNil())

	err := (&ConfigError{Errors: []string{"log.level: invalid"}}).orNil()
	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, "validation failed:\n  - log.level: invalid", err.Error())
}
