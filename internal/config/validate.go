package config

import (
	"fmt"
	"net/url"

	"golang.org/x/text/language"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// maxPreviewSize is one TMDB result page.
const maxPreviewSize = 20

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.TMDB.APIKey == "" {
		errs = append(errs, "tmdb.api_key: required (or set "+APIKeyEnv+")")
	}
	if _, err := language.Parse(c.TMDB.Language); err != nil {
		errs = append(errs, fmt.Sprintf("tmdb.language: not a BCP 47 tag: %q", c.TMDB.Language))
	}
	if msg := checkURL(c.TMDB.BaseURL); msg != "" {
		errs = append(errs, "tmdb.base_url: "+msg)
	}
	if msg := checkURL(c.TMDB.ImageBaseURL); msg != "" {
		errs = append(errs, "tmdb.image_base_url: "+msg)
	}
	if c.TMDB.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("tmdb.timeout: must be positive, got %s", c.TMDB.Timeout))
	}

	if c.UI.RotationInterval <= 0 {
		errs = append(errs, fmt.Sprintf("ui.rotation_interval: must be positive, got %s", c.UI.RotationInterval))
	}
	if c.UI.PreviewSize < 1 || c.UI.PreviewSize > maxPreviewSize {
		errs = append(errs, fmt.Sprintf("ui.preview_size: must be between 1 and %d, got %d", maxPreviewSize, c.UI.PreviewSize))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}

func checkURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("invalid URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("must be an http(s) URL, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Sprintf("missing host in %q", raw)
	}
	return ""
}
