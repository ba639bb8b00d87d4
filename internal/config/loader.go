package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix      = "SMURF_"
	envConfigFile  = "SMURF_CONFIG"
	envDotenvFile  = "SMURF_DOTENV"
	defaultDotenv  = ".env"
	keyDelimiter   = "."
	unmarshalTagID = "koanf"
)

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New())
//  2. YAML file if SMURF_CONFIG is set
//  3. env (prefix SMURF_), after a dotenv file (SMURF_DOTENV, default .env) has
//     filled in variables that are not already set
func Load() (*Config, error) {
	base := New()

	if err := loadDotenv(); err != nil {
		return nil, err
	}

	k := koanf.New(keyDelimiter)

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// SMURF_MIN_PEAK_TIER -> min_peak_tier; underscores are kept to match the koanf tags.
	envProvider := env.Provider(envPrefix, keyDelimiter, func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: unmarshalTagID}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotenv applies a dotenv file without overriding variables already in the environment.
func loadDotenv() error {
	path := os.Getenv(envDotenvFile)
	explicit := path != ""
	if !explicit {
		path = defaultDotenv
	}
	err := godotenv.Load(path)
	switch {
	case err == nil:
		return nil
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("%w: dotenv %s: %w", ErrLoadConfig, path, err)
	}
}

// Validate checks invariants the rest of the program relies on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.Acts < 1:
		return fmt.Errorf("%w: acts must be at least 1", ErrInvalidConfig)
	case c.MinDelayMS < 0:
		return fmt.Errorf("%w: min_delay_ms must not be negative", ErrInvalidConfig)
	case c.TimeoutMS <= 0:
		return fmt.Errorf("%w: timeout_ms must be positive", ErrInvalidConfig)
	case c.BaseURL == "":
		return fmt.Errorf("%w: base_url must not be empty", ErrInvalidConfig)
	}
	return nil
}
