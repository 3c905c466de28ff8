// Package config provides configuration loading and management for wikipatch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete wikipatch configuration
type Config struct {
	API  APIConfig  `yaml:"api"`
	Edit EditConfig `yaml:"edit"`
}

// APIConfig configures the MediaWiki Action API connection
type APIConfig struct {
	// Endpoint is the Action API endpoint (default: Wikidata's api.php)
	Endpoint string `yaml:"endpoint"`
	// UserAgent is sent on every request, per the Wikimedia User-Agent policy
	UserAgent string `yaml:"user_agent"`
	// Timeout is the per-request HTTP timeout
	Timeout time.Duration `yaml:"timeout"`
}

// EditConfig configures edit submission behavior
type EditConfig struct {
	// Retries is the attempt budget per entity edit
	Retries int `yaml:"retries"`
	// MaxLagWait is how long to wait before retrying a lagged edit
	MaxLagWait time.Duration `yaml:"maxlag_wait"`
	// Delay is the pause between consecutive entity edits
	Delay time.Duration `yaml:"delay"`
	// BlocklistTitle is a wiki page title whose item-id mentions are
	// excluded from editing (empty = no blocklist)
	BlocklistTitle string `yaml:"blocklist_title"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Endpoint:  "https://www.wikidata.org/w/api.php",
			UserAgent: "wikipatch/1.0 (https://github.com/c360studio/wikipatch)",
			Timeout:   60 * time.Second,
		},
		Edit: EditConfig{
			Retries:    5,
			MaxLagWait: 5 * time.Second,
			Delay:      0,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return fmt.Errorf("api.endpoint is required")
	}
	if !strings.HasPrefix(c.API.Endpoint, "http://") && !strings.HasPrefix(c.API.Endpoint, "https://") {
		return fmt.Errorf("api.endpoint must be an http(s) URL")
	}
	if c.API.UserAgent == "" {
		return fmt.Errorf("api.user_agent is required")
	}
	if c.Edit.Retries < 1 {
		return fmt.Errorf("edit.retries must be at least 1")
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

	// API
	if other.API.Endpoint != "" {
		c.API.Endpoint = other.API.Endpoint
	}
	if other.API.UserAgent != "" {
		c.API.UserAgent = other.API.UserAgent
	}
	if other.API.Timeout != 0 {
		c.API.Timeout = other.API.Timeout
	}

	// Edit
	if other.Edit.Retries != 0 {
		c.Edit.Retries = other.Edit.Retries
	}
	if other.Edit.MaxLagWait != 0 {
		c.Edit.MaxLagWait = other.Edit.MaxLagWait
	}
	if other.Edit.Delay != 0 {
		c.Edit.Delay = other.Edit.Delay
	}
	if other.Edit.BlocklistTitle != "" {
		c.Edit.BlocklistTitle = other.Edit.BlocklistTitle
	}
}
