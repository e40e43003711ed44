package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gerunddev/mdjson/convert"
)

// Config represents the mdjson CLI defaults
type Config struct {
	// Encoder
	HeadingLevel     int  `json:"heading_level"`
	IndentSize       int  `json:"indent_size"`
	UseNumberedLists bool `json:"use_numbered_lists"`
	ArraysAsTables   bool `json:"arrays_as_tables"`
	MaxDepth         int  `json:"max_depth"`

	// Decoder
	ParseNumberedLists bool `json:"parse_numbered_lists"`
	ParseTables        bool `json:"parse_tables"`
	CamelCaseKeys      bool `json:"camel_case_keys"`

	// CLI
	LogFile  string `json:"log_file,omitempty"` // empty logs to stderr
	LogLevel string `json:"log_level"`
	Render   string `json:"render"` // auto, always or never
}

// Render modes
const (
	RenderAuto   = "auto"
	RenderAlways = "always"
	RenderNever  = "never"
)

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		HeadingLevel:       convert.DefaultHeadingLevel,
		IndentSize:         convert.DefaultIndentSize,
		MaxDepth:           convert.DefaultMaxDepth,
		ParseNumberedLists: true,
		ParseTables:        true,
		LogLevel:           "warn",
		Render:             RenderAuto,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "mdjson", "config.json")
	}
	return filepath.Join(home, ".config", "mdjson", "config.json")
}

// Load reads configuration from the config path. Fields missing from the
// file keep their defaults.
func Load() (*Config, error) {
	configPath := ConfigPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.LogFile, err = expandPath(cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to expand log_file: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config path
func (c *Config) Save() error {
	configPath := ConfigPath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid. Errors name the
// offending JSON keys.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HeadingLevel, validation.Required, validation.Min(1), validation.Max(6)),
		validation.Field(&c.IndentSize, validation.Required, validation.Min(1), validation.Max(8)),
		validation.Field(&c.MaxDepth, validation.Required, validation.Min(1)),
		validation.Field(&c.LogLevel, validation.Required, validation.In("debug", "info", "warn", "error").
			Error("must be one of: debug, info, warn, error")),
		validation.Field(&c.Render, validation.Required, validation.In(RenderAuto, RenderAlways, RenderNever).
			Error("must be one of: auto, always, never")),
	)
}

// EncodeOptions returns the encoder settings
func (c *Config) EncodeOptions() convert.EncodeOptions {
	return convert.EncodeOptions{
		HeadingLevel:     c.HeadingLevel,
		IndentSize:       c.IndentSize,
		UseNumberedLists: c.UseNumberedLists,
		ArraysAsTables:   c.ArraysAsTables,
		MaxDepth:         c.MaxDepth,
	}
}

// DecodeOptions returns the decoder settings
func (c *Config) DecodeOptions() convert.DecodeOptions {
	return convert.DecodeOptions{
		DisableNumberedLists: !c.ParseNumberedLists,
		DisableTables:        !c.ParseTables,
		CamelCaseKeys:        c.CamelCaseKeys,
	}
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
