package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathEnv names an explicit config file and disables the search.
const PathEnv = "CINEBROWSE_CONFIG"

// ErrNotFound is returned by Discover when no candidate file exists.
var ErrNotFound = errors.New("config not found")

// DefaultPath is the per-user config file:
// $XDG_CONFIG_HOME/cinebrowse/config.toml, falling back to ~/.config.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "cinebrowse", "config.toml")
}

// candidates lists the searched locations, most specific first.
func candidates() []string {
	return []string{"./config.toml", DefaultPath()}
}

// Discover returns the config file to load. $CINEBROWSE_CONFIG wins and
// must exist; otherwise the first existing candidate is used.
func Discover() (string, error) {
	if explicit := os.Getenv(PathEnv); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%s=%s: %w", PathEnv, explicit, err)
		}
		return explicit, nil
	}

	paths := candidates()
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (searched %s)", ErrNotFound, strings.Join(paths, ", "))
}
