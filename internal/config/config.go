// Package config loads imagefill settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/gogpu/imagefill/loader"
)

// Prefix is the environment variable prefix, e.g. IMAGEFILL_BASE_DIR.
const Prefix = "imagefill"

// Config holds loader settings.
type Config struct {
	BaseDir       string        `envconfig:"BASE_DIR" default:"."`
	LoadTimeout   time.Duration `envconfig:"LOAD_TIMEOUT" default:"30s"`
	MaxBytes      int64         `envconfig:"MAX_BYTES" default:"67108864"`
	MaxConcurrent int64         `envconfig:"MAX_CONCURRENT" default:"4"`
	UserAgent     string        `envconfig:"USER_AGENT" default:"imagefill/0.1"`
}

// Load reads the configuration from IMAGEFILL_* environment variables,
// applying defaults for unset ones.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that numeric limits are usable.
func (c *Config) Validate() error {
	if c.LoadTimeout <= 0 {
		return fmt.Errorf("config: load timeout must be positive, got %v", c.LoadTimeout)
	}
	if c.MaxBytes <= 0 {
		return fmt.Errorf("config: max bytes must be positive, got %d", c.MaxBytes)
	}
	if c.MaxConcurrent <= 0 {
		return fmt.Errorf("config: max concurrent loads must be positive, got %d", c.MaxConcurrent)
	}
	return nil
}

// LoaderOptions converts the configuration to loader options.
func (c *Config) LoaderOptions() []loader.Option {
	return []loader.Option{
		loader.WithBaseDir(c.BaseDir),
		loader.WithTimeout(c.LoadTimeout),
		loader.WithMaxBytes(c.MaxBytes),
		loader.WithMaxConcurrent(c.MaxConcurrent),
		loader.WithUserAgent(c.UserAgent),
	}
}
