// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults applied before the file is decoded.
const (
	DefaultLanguage         = "pt-BR"
	DefaultBaseURL          = "https://api.themoviedb.org"
	DefaultImageBaseURL     = "https://image.tmdb.org/t/p/"
	DefaultTimeout          = 10 * time.Second
	DefaultRotationInterval = 10 * time.Second
	DefaultPreviewSize      = 10
	DefaultLogLevel         = "info"

	// APIKeyEnv is read when no config file exists.
	APIKeyEnv = "TMDB_API_KEY"
)

// Config is the root configuration structure.
type Config struct {
	TMDB TMDBConfig `toml:"tmdb"`
	UI   UIConfig   `toml:"ui"`
	Log  LogConfig  `toml:"log"`
}

type TMDBConfig struct {
	APIKey       string        `toml:"api_key"`
	Language     string        `toml:"language"`
	BaseURL      string        `toml:"base_url"`
	ImageBaseURL string        `toml:"image_base_url"`
	Timeout      time.Duration `toml:"timeout"`
}

type UIConfig struct {
	DarkMode         bool          `toml:"dark_mode"`
	RotationInterval time.Duration `toml:"rotation_interval"`
	PreviewSize      int           `toml:"preview_size"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// SlogLevel maps the configured level onto slog. Unknown levels map to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns a config with every default applied and no API key.
func Default() *Config {
	return &Config{
		TMDB: TMDBConfig{
			Language:     DefaultLanguage,
			BaseURL:      DefaultBaseURL,
			ImageBaseURL: DefaultImageBaseURL,
			Timeout:      DefaultTimeout,
		},
		UI: UIConfig{
			RotationInterval: DefaultRotationInterval,
			PreviewSize:      DefaultPreviewSize,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cerr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if err := cerr.orNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the file, reporting only
// unresolved environment variables.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := (&ConfigError{Path: path, Missing: missing}).orNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a config from defaults and the TMDB_API_KEY variable,
// for running without a config file.
func FromEnv() (*Config, error) {
	cfg := Default()
	cfg.TMDB.APIKey = os.Getenv(APIKeyEnv)
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Errors: errs}
	}
	return cfg, nil
}

// Resolve loads the config at path, or the discovered one when path is
// empty. With no file anywhere it falls back to FromEnv. The returned path
// is empty in that case.
func Resolve(path string) (*Config, string, error) {
	if path == "" {
		found, err := Discover()
		switch {
		case errors.Is(err, ErrNotFound):
			cfg, err := FromEnv()
			return cfg, "", err
		case err != nil:
			return nil, "", err
		}
		path = found
	}
	cfg, err := Load(path)
	return cfg, path, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	cfg := Default()
	if _, err := toml.Decode(content, cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, missing, nil
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces environment references with their values and
// returns the references that could not be resolved. Unresolved references
// are left in place.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, name+": "+arg)
				return match
			}
			return value
		}

		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	return out, missing
}
