package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/vmunix/cinebrowse/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields and environment variable substitution.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigCheck,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configCheckCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if configPath != "" {
		fmt.Fprintln(out, configPath)
		return nil
	}
	path, err := config.Discover()
	if errors.Is(err, config.ErrNotFound) {
		fmt.Fprintf(out, "none (defaults, API key from $%s)\n", config.APIKeyEnv)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, path)
	return nil
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	out := cmd.OutOrStdout()

	cfg, resolved, err := config.Resolve(path)
	if resolved == "" && path == "" {
		resolved = "environment"
	} else if resolved == "" {
		resolved = path
	}
	fmt.Fprintf(out, "Validating %s...\n\n", resolved)

	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return errors.New("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  TMDB:      %s (language %s, timeout %s)\n", cfg.TMDB.BaseURL, cfg.TMDB.Language, cfg.TMDB.Timeout)
	fmt.Fprintf(w, "  Images:    %s\n", cfg.TMDB.ImageBaseURL)
	fmt.Fprintf(w, "  API key:   %s\n", maskKey(cfg.TMDB.APIKey))
	fmt.Fprintf(w, "  UI:        dark=%t rotation=%s preview=%d\n", cfg.UI.DarkMode, cfg.UI.RotationInterval, cfg.UI.PreviewSize)
	fmt.Fprintf(w, "  Log level: %s\n", cfg.Log.Level)
}

func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.WriteDefault(path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s already exists", path)
		}
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
