// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// configDirOverride redirects ConfigDir for tests. os.UserHomeDir() does
// not reliably respect the HOME environment variable on all platforms
// (e.g., macOS in CI), so tests point this at a t.TempDir() instead.
var configDirOverride string

// SetConfigDirOverride sets a custom config directory path for tests.
// Pair with a cleanup call to Reset.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears test overrides, restoring platform config-dir lookup.
func Reset() {
	configDirOverride = ""
}

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// ResolvedPath returns the config file actually used by a load with the
// given options, or the empty string when defaults are in effect.
func ResolvedPath(ctx context.Context, opts LoadOptions) (string, error) {
	_, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return "", err
	}
	return path, nil
}
