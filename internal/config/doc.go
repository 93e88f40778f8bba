// Package config loads the specsync configuration file.
//
// The configuration is a single YAML document. Every field is optional and
// falls back to the value returned by Default:
//
//	watchDir: ./input
//	debounce: 250ms
//	stopToken: stop
//	logLevel: info
//	logFormat: text
//	queueSize: 128
//
// A missing configuration file is not an error; LoadConfig returns the
// defaults. A file that exists but cannot be parsed, or that fails
// validation, is reported as a ConfigurationError.
package config
