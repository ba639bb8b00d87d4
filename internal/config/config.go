// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load layers a dotenv file, an optional YAML file and SMURF_* env vars over New().
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"time"
)

// Config contains process configuration shared by the server and the CLI.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// APIKey is the TRN-Api-Key sent to the tracker API. May be empty for the
	// server when clients send their own key per request.
	APIKey string `koanf:"api_key"`

	// BaseURL is the tracker API root.
	BaseURL string `koanf:"base_url"`

	// UserAgent is sent on every upstream request.
	UserAgent string `koanf:"user_agent"`

	// TimeoutMS bounds a single upstream request.
	TimeoutMS int `koanf:"timeout_ms"`

	// MinDelayMS is the minimum spacing between two upstream calls.
	MinDelayMS int `koanf:"min_delay_ms"`

	// ForceCollect asks the tracker to refresh the profile before answering.
	ForceCollect bool `koanf:"force_collect"`

	// MinPeakTier, MaxCurrentTier and MinGap tune the suspicion rule.
	MinPeakTier    int `koanf:"min_peak_tier"`
	MaxCurrentTier int `koanf:"max_current_tier"`
	MinGap         int `koanf:"min_gap"`

	// Acts is how many trailing acts are examined.
	Acts int `koanf:"acts"`

	// RiotIDColumn is the exact header of the identifier column; empty means auto-detect.
	RiotIDColumn string `koanf:"riot_id_column"`

	// MaxUploadBytes caps uploaded spreadsheets on POST /check.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9080",
		BaseURL:        "https://api.tracker.gg/api/v2",
		UserAgent:      "smurfwatch/1.0",
		TimeoutMS:      20_000,
		MinDelayMS:     200,
		ForceCollect:   true,
		MinPeakTier:    18,
		MaxCurrentTier: 12,
		MinGap:         6,
		Acts:           3,
		MaxUploadBytes: 10 << 20,
	}
}

// Timeout returns TimeoutMS as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// MinDelay returns MinDelayMS as a duration.
func (c *Config) MinDelay() time.Duration {
	return time.Duration(c.MinDelayMS) * time.Millisecond
}
