package config

// DefaultWatchDebounceMs is the default debounce window for watch mode.
const DefaultWatchDebounceMs = 250

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Output:          "console",
		WatchDebounceMs: DefaultWatchDebounceMs,
	}
}
