// SPDX-License-Identifier: MPL-2.0

package config

import "fmt"

// EnvironmentKind selects which source-unit environment the loader
// drives. The zero value is not valid; DefaultConfig picks CUE.
type EnvironmentKind string

const (
	// EnvironmentCUE loads declarative CUE unit files.
	EnvironmentCUE EnvironmentKind = "cue"
	// EnvironmentShell loads POSIX shell unit files.
	EnvironmentShell EnvironmentKind = "shell"
)

// IsValid reports whether the kind names a known environment.
func (k EnvironmentKind) IsValid() bool {
	switch k {
	case EnvironmentCUE, EnvironmentShell:
		return true
	}
	return false
}

type (
	// Config is the root of unitload's configuration document.
	Config struct {
		// ModulesRoot overrides the default modules root (two
		// directories above the executable). Empty keeps the default.
		ModulesRoot string `mapstructure:"modules_root"`
		// Environment selects the unit environment kind.
		Environment EnvironmentKind `mapstructure:"environment"`
		// Extensions overrides the probe order for unit files.
		// Each entry must start with a dot. Empty keeps the
		// environment's defaults.
		Extensions []string `mapstructure:"extensions"`
		// Namespaces maps name prefixes to directories, applied at
		// startup before any manifest mappings.
		Namespaces map[string]string `mapstructure:"namespaces"`
		// Overrides pins individual names to explicit file paths.
		Overrides map[string]string `mapstructure:"overrides"`
		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables debug-level diagnostic output.
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the configuration used when no config file
// exists on disk.
func DefaultConfig() *Config {
	return &Config{
		Environment: EnvironmentCUE,
		Namespaces:  map[string]string{},
		Overrides:   map[string]string{},
	}
}

// ValidationError reports a configuration value the schema accepts
// syntactically but that unitload cannot use.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config value for %q: %q (%s)", e.Field, e.Value, e.Reason)
}

// Validate applies the checks the CUE schema cannot express, such as
// extension spelling.
func (c *Config) Validate() error {
	if !c.Environment.IsValid() {
		return &ValidationError{Field: "environment", Value: string(c.Environment), Reason: "must be \"cue\" or \"shell\""}
	}
	for _, ext := range c.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			return &ValidationError{Field: "extensions", Value: ext, Reason: "extensions must start with a dot"}
		}
	}
	return nil
}
