package app

import (
	"time"

	"specsync/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug forces debug-level logging regardless of the file setting
	Debug bool

	// Custom configuration file path (optional)
	ConfigPath string

	// Command-line overrides; zero values leave the file setting alone
	WatchDir string
	Debounce *time.Duration

	// Settings is the resolved configuration, filled by NewApplication
	Settings *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}

// resolve loads the file configuration (unless already set) and applies the
// command-line overrides on top.
func (c *Config) resolve() (config.Config, error) {
	var settings config.Config
	if c.Settings != nil {
		settings = *c.Settings
	} else {
		loaded, err := config.LoadConfig(c.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		settings = loaded
	}

	if c.WatchDir != "" {
		settings.WatchDir = c.WatchDir
	}
	if c.Debounce != nil {
		settings.Debounce = *c.Debounce
	}
	if c.Debug {
		settings.LogLevel = "debug"
	}
	if err := config.Validate(settings); err != nil {
		return config.Config{}, err
	}
	return settings, nil
}
