// Package config handles configuration loading and management for jsonspec.
//
// It provides functionality for:
//   - Loading configuration from .jsonspec.yaml or .jsonspec.yml files
//   - Default configuration values
//   - Merging file configuration with command-line overrides
package config
