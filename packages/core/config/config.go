package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the jsonspec configuration
type Config struct {
	Output          string `yaml:"output,omitempty"`          // console, json, junit or tap
	NoColor         *bool  `yaml:"noColor,omitempty"`
	Bail            *bool  `yaml:"bail,omitempty"`
	Quiet           *bool  `yaml:"quiet,omitempty"`
	HistoryPath     string `yaml:"historyPath,omitempty"`     // sqlite file for run history
	WatchDebounceMs int    `yaml:"watchDebounceMs,omitempty"` // watch-mode debounce window
}

// BoolPtr returns a pointer to a bool value, for explicit overrides
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetBail returns the bail setting, defaulting to false
func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

// GetQuiet returns the quiet setting, defaulting to false
func (c *Config) GetQuiet() bool {
	return getBool(c.Quiet, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".jsonspec.yaml",
	".jsonspec.yml",
}

// LoadConfig loads configuration from the specified path or searches for
// config files in the working directory
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Output != "" {
		result.Output = other.Output
	}
	if other.HistoryPath != "" {
		result.HistoryPath = other.HistoryPath
	}
	if other.WatchDebounceMs > 0 {
		result.WatchDebounceMs = other.WatchDebounceMs
	}

	// Boolean flags - only override if explicitly set in other config
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.Bail != nil {
		result.Bail = other.Bail
	}
	if other.Quiet != nil {
		result.Quiet = other.Quiet
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
