package config

import (
	"fmt"
	"strings"
)

// ConfigError reports every problem found in one config source, so users
// can fix them in a single pass.
type ConfigError struct {
	Path    string   // empty when the config came from the environment
	Missing []string // ${VAR} references with no value
	Errors  []string // "section.key: problem"
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var b strings.Builder
	if e.Path != "" {
		fmt.Fprintf(&b, "config %s:\n", e.Path)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "missing environment variables: %s\n", strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		b.WriteString("validation failed:\n")
		for _, msg := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

// orNil returns e as an error only when it holds something.
func (e *ConfigError) orNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
