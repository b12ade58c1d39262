// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions names the explicit inputs of a config load. Zero values
	// mean "resolve from the config directory", which in turn honors the
	// process-wide override set by SetConfigDirOverride.
	LoadOptions struct {
		// ConfigFilePath forces loading a specific config file.
		ConfigFilePath string
		// ConfigDirPath looks for the config file in a specific directory.
		ConfigDirPath string
	}

	// Provider yields the effective cedet configuration: defaults merged
	// with whatever config file the options resolve to, validated against
	// the embedded schema.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}
)

type fileProvider struct{}

// NewProvider returns the file-backed Provider used in production wiring.
func NewProvider() Provider {
	return &fileProvider{}
}

func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
