package config

import "fmt"

const (
	ErrorTypeIO         = "io"
	ErrorTypeParse      = "parse"
	ErrorTypeValidation = "validation"
)

// ConfigurationError represents a failure to load the configuration file
type ConfigurationError struct {
	FilePath  string `json:"filePath"`  // Path of the file that caused the error
	ErrorType string `json:"errorType"` // Type of error (io, parse, validation)
	Message   string `json:"message"`   // Human-readable error message
	Cause     error  `json:"-"`
}

// Error implements the error interface
func (ce *ConfigurationError) Error() string {
	if ce.Cause == nil {
		return fmt.Sprintf("[%s] %s: %s", ce.ErrorType, ce.FilePath, ce.Message)
	}
	return fmt.Sprintf("[%s] %s: %s: %v", ce.ErrorType, ce.FilePath, ce.Message, ce.Cause)
}

func (ce *ConfigurationError) Unwrap() error {
	return ce.Cause
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(filePath, errorType, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		FilePath:  filePath,
		ErrorType: errorType,
		Message:   message,
		Cause:     cause,
	}
}
