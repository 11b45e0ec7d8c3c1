package types

import (
	"errors"
	"fmt"
)

// Config holds the shell settings loaded from config.yaml.
type Config struct {
	LogLevel   string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFormat  string `json:"log_format" yaml:"log_format" mapstructure:"log_format"`
	TableStyle string `json:"table_style" yaml:"table_style" mapstructure:"table_style"`
	Seed       bool   `json:"seed" yaml:"seed" mapstructure:"seed"`
	Journal    bool   `json:"journal" yaml:"journal" mapstructure:"journal"`
}

// Supported config values.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"

	TableStyleLight   = "light"
	TableStyleRounded = "rounded"
	TableStyleDouble  = "double"
	TableStyleDefault = "default"
)

// ErrConfigInvalid is returned by Validate for unrecognized values.
var ErrConfigInvalid = errors.New("invalid config")

var (
	knownLogLevels   = map[string]bool{"": true, "debug": true, "info": true, "warn": true, "warning": true, "error": true}
	knownLogFormats  = map[string]bool{"": true, LogFormatText: true, LogFormatJSON: true}
	knownTableStyles = map[string]bool{"": true, TableStyleLight: true, TableStyleRounded: true, TableStyleDouble: true, TableStyleDefault: true}
)

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		LogLevel:   "info",
		LogFormat:  LogFormatText,
		TableStyle: TableStyleLight,
		Seed:       true,
		Journal:    true,
	}
}

// Validate checks that the Config is well-formed. Empty strings fall back to
// defaults and are accepted.
func (c Config) Validate() error {
	if !knownLogLevels[c.LogLevel] {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, ErrConfigInvalid)
	}
	if !knownLogFormats[c.LogFormat] {
		return fmt.Errorf("log_format %q: %w", c.LogFormat, ErrConfigInvalid)
	}
	if !knownTableStyles[c.TableStyle] {
		return fmt.Errorf("table_style %q: %w", c.TableStyle, ErrConfigInvalid)
	}
	return nil
}
