// Package config provides configuration management for sgn.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the sgn project configuration.
type Config struct {
	ContentDir   string `yaml:"content_dir"`
	ShortcodeDir string `yaml:"shortcode_dir"`
	OutputDir    string `yaml:"output_dir"`
	OutputFormat string `yaml:"output_format,omitempty"`
}

// Default returns a configuration with the standard project layout.
func Default() *Config {
	return &Config{
		ContentDir:   "content",
		ShortcodeDir: "templates/shortcodes",
		OutputDir:    "public",
	}
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return errors.New("content_dir is required")
	}
	if c.ShortcodeDir == "" {
		return errors.New("shortcode_dir is required")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	switch c.OutputFormat {
	case "", "table", "json", "plain":
	default:
		return fmt.Errorf("output_format must be table, json or plain, got %q", c.OutputFormat)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if dir := os.Getenv("SGN_CONTENT_DIR"); dir != "" {
		c.ContentDir = dir
	}
	if dir := os.Getenv("SGN_SHORTCODE_DIR"); dir != "" {
		c.ShortcodeDir = dir
	}
	if dir := os.Getenv("SGN_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
	if format := os.Getenv("SGN_OUTPUT_FORMAT"); format != "" {
		c.OutputFormat = format
	}
}

// DefaultConfigPath returns the default configuration file path: the
// project-local sitegen.yml.
func DefaultConfigPath() string {
	return "sitegen.yml"
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file falls back to the default layout.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		cfg = Default()
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
