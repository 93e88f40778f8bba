package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"specsync/pkg/logging"
)

// DefaultConfigFile is read when no explicit path is given.
const DefaultConfigFile = "config.yaml"

// LoadConfig reads the configuration file at path on top of the defaults.
// An empty path means DefaultConfigFile.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("ConfigLoader", "No config file found at %s, using defaults", path)
			return cfg, nil
		}
		return Config{}, NewConfigurationError(path, ErrorTypeIO, "cannot read configuration file", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, NewConfigurationError(path, ErrorTypeParse, "malformed configuration file", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, NewConfigurationError(path, ErrorTypeValidation, "invalid configuration", err)
	}

	logging.Info("ConfigLoader", "Loaded configuration from %s", path)
	return cfg, nil
}
