// Package config handles reading and writing ~/.prajna/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for ~/.prajna/config.yaml.
type Config struct {
	Version  int            `yaml:"version"`
	API      APIConfig      `yaml:"api"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Polling  PollingConfig  `yaml:"polling"`
}

// APIConfig holds connection settings for the judge API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DefaultsConfig holds editor defaults applied when opening a workspace.
type DefaultsConfig struct {
	Language string `yaml:"language"`
}

// PollingConfig controls the submission status poll loop.
type PollingConfig struct {
	IntervalMS int `yaml:"interval_ms"`
}

const configDir = ".prajna"
const configFile = "config.yaml"

// Dir returns the prajna data directory inside base (normally the user
// home directory). The directory is not created.
func Dir(base string) string {
	return filepath.Join(base, configDir)
}

// ReadConfig reads .prajna/config.yaml from the given base directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(base string) (*Config, error) {
	path := filepath.Join(base, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .prajna/config.yaml in the given base directory.
// Creates the .prajna/ directory if it does not exist.
func WriteConfig(base string, cfg *Config) error {
	dirPath := filepath.Join(base, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// PollInterval returns the submission poll interval as a duration,
// falling back to the default when unset or nonsensical.
func (c *Config) PollInterval() time.Duration {
	if c.Polling.IntervalMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.Polling.IntervalMS) * time.Millisecond
}

// RequestTimeout returns the per-request HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL:        "http://127.0.0.1:8001/api/v1",
			TimeoutSeconds: 30,
		},
		Defaults: DefaultsConfig{
			Language: "python",
		},
		Polling: PollingConfig{
			IntervalMS: 2000,
		},
	}
}
