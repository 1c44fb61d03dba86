package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vmunix/cinebrowse/internal/app"
	"github.com/vmunix/cinebrowse/internal/config"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	logLevel   string
	darkMode   bool
)

var rootCmd = &cobra.Command{
	Use:   "cinebrowse",
	Short: "Browse movies from The Movie Database",
	Long: `cinebrowse - browse movies from The Movie Database

Lists popular and upcoming movies, browses categories, searches titles
and shows movie details with cast. Run 'cinebrowse tui' for the
interactive terminal UI.

Configuration is read from $CINEBROWSE_CONFIG, ./config.toml or
$XDG_CONFIG_HOME/cinebrowse/config.toml. Without a file, defaults are
used and the API key is read from $TMDB_API_KEY.`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&darkMode, "dark", false, "Start in dark mode (overrides config)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("cinebrowse {{.Version}}\n")
}

// loadConfig resolves the config and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, _, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if errs := cfg.Validate(); len(errs) > 0 {
			return nil, &config.ConfigError{Path: configPath, Errors: errs}
		}
	}
	if darkMode {
		cfg.UI.DarkMode = true
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
}

// newApp builds the app for one command, logging to stderr. The caller
// closes it.
func newApp(cmd *cobra.Command) (*app.App, error) {
	return newAppLogging(cmd.ErrOrStderr())
}

func newAppLogging(w io.Writer) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return app.New(cfg, app.WithLogger(newLogger(w, cfg))), nil
}
