// Package config provides configuration loading and management for
// tokenlint.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tokenlint configuration
type Config struct {
	Tokens TokensConfig `yaml:"tokens"`
	Rules  RulesConfig  `yaml:"rules"`
	NATS   NATSConfig   `yaml:"nats"`
}

// TokensConfig configures token document discovery
type TokensConfig struct {
	// Patterns are glob patterns for token documents (supports ** via
	// doublestar)
	Patterns []string `yaml:"patterns"`
	// WatchDebounce is how long watch mode waits for further changes
	// before revalidating
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// RulesConfig configures where validation rule sets come from
type RulesConfig struct {
	// File is a YAML rule-set document; empty means built-in defaults
	// (or the NATS store when connected)
	File string `yaml:"file"`
	// Project/Brand select the scope whose effective rule set applies
	Project string `yaml:"project"`
	Brand   string `yaml:"brand"`
}

// NATSConfig configures the NATS connection for store-backed commands
type NATSConfig struct {
	// URL is the NATS server URL (empty = use embedded server)
	URL string `yaml:"url"`
	// Embedded indicates whether to use embedded NATS
	Embedded bool `yaml:"embedded"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Tokens: TokensConfig{
			Patterns:      []string{"tokens/**/*.yaml"},
			WatchDebounce: 250 * time.Millisecond,
		},
		Rules: RulesConfig{},
		NATS: NATSConfig{
			URL:      "",
			Embedded: true,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if len(c.Tokens.Patterns) == 0 {
		return fmt.Errorf("tokens.patterns is required")
	}
	if c.Tokens.WatchDebounce < 0 {
		return fmt.Errorf("tokens.watch_debounce must not be negative")
	}
	if c.Rules.Brand != "" && c.Rules.Project == "" {
		return fmt.Errorf("rules.brand requires rules.project")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
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

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Tokens
	if len(other.Tokens.Patterns) > 0 {
		c.Tokens.Patterns = other.Tokens.Patterns
	}
	if other.Tokens.WatchDebounce != 0 {
		c.Tokens.WatchDebounce = other.Tokens.WatchDebounce
	}

	// Rules
	if other.Rules.File != "" {
		c.Rules.File = other.Rules.File
	}
	if other.Rules.Project != "" {
		c.Rules.Project = other.Rules.Project
	}
	if other.Rules.Brand != "" {
		c.Rules.Brand = other.Rules.Brand
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
		c.NATS.Embedded = false
	}
}
