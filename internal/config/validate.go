package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"

	"seriesshift/internal/domain/series"
	"seriesshift/internal/util"
)

var validFormats = map[string]bool{"text": true, "json": true, "yaml": true}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if _, err := util.ParseDate(c.Target); err != nil {
		return fmt.Errorf("target must be YYYY-MM-DD: %w", err)
	}
	if _, err := series.ParseAnchor(c.Anchor); err != nil {
		return err
	}
	if !validFormats[c.Format] {
		return fmt.Errorf("format %q must be one of text, json, yaml", c.Format)
	}
	if c.Concurrency < 1 {
		return errors.New("concurrency must be >= 1")
	}
	if c.AlphaVantage.Timeout < 0 {
		return errors.New("alphavantage.timeout must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
