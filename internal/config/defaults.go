package config

import (
	"os"
	"time"

	"seriesshift/internal/adapters/alphavantage"
)

// Default values for optional configuration fields.
const (
	DefaultTarget      = "2025-05-21"
	DefaultAnchor      = "earliest"
	DefaultSource      = "builtin"
	DefaultOutput      = "stdout"
	DefaultFormat      = "text"
	DefaultConcurrency = 2
	DefaultTimeout     = 30 * time.Second
	DefaultLogLevel    = "info"
)

// Environment variables that override file values.
const (
	EnvTarget = "SERIESSHIFT_TARGET"
	EnvSource = "SERIESSHIFT_SOURCE"
	EnvAPIKey = "ALPHAVANTAGE_API_KEY"
)

func (c *Config) applyDefaults() {
	if c.Target == "" {
		c.Target = DefaultTarget
	}
	if c.Anchor == "" {
		c.Anchor = DefaultAnchor
	}
	if c.Source == "" {
		c.Source = DefaultSource
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.AlphaVantage.BaseURL == "" {
		c.AlphaVantage.BaseURL = alphavantage.DefaultBaseURL
	}
	if c.AlphaVantage.Timeout == 0 {
		c.AlphaVantage.Timeout = DefaultTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvTarget); v != "" {
		c.Target = v
	}
	if v := os.Getenv(EnvSource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.AlphaVantage.APIKey = v
	}
}
