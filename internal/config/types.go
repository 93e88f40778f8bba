package config

import "time"

// Config is the top-level configuration structure for specsync.
type Config struct {
	WatchDir  string        `yaml:"watchDir"`            // Directory holding the object files
	Debounce  time.Duration `yaml:"debounce"`            // Quiet period before a path's events are emitted
	StopToken string        `yaml:"stopToken"`           // Base-name suffix of the file that stops the loop
	LogLevel  string        `yaml:"logLevel"`            // debug, info, warn or error
	LogFormat string        `yaml:"logFormat"`           // text or json
	QueueSize int           `yaml:"queueSize,omitempty"` // Capacity of the event channel
}
