package config

import "time"

const (
	DefaultWatchDir  = "./input"
	DefaultDebounce  = 250 * time.Millisecond
	DefaultStopToken = "stop"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultQueueSize = 128
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		WatchDir:  DefaultWatchDir,
		Debounce:  DefaultDebounce,
		StopToken: DefaultStopToken,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		QueueSize: DefaultQueueSize,
	}
}
