// Package config loads run settings for the date shifter from an optional
// YAML file, environment overrides and defaults.
package config

import "time"

type Config struct {
	Target       string             `yaml:"target"`
	Anchor       string             `yaml:"anchor"`
	Source       string             `yaml:"source"`
	Output       string             `yaml:"output"`
	Format       string             `yaml:"format"`
	Symbols      []string           `yaml:"symbols"`
	Concurrency  int                `yaml:"concurrency"`
	AlphaVantage AlphaVantageConfig `yaml:"alphavantage"`
	Log          LogConfig          `yaml:"log"`
}

type AlphaVantageConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}
