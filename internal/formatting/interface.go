// Package formatting renders directory check results for the terminal.
//
// Three output formats are supported: a rounded table (the default), JSON
// and YAML. Every formatter writes to the io.Writer configured in Options.
package formatting

import (
	"io"
	"os"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// Status values reported per file.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Row is the check outcome for one file.
type Row struct {
	File   string `json:"file" yaml:"file"`
	Kind   string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Status string `json:"status" yaml:"status"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the file could not be loaded.
func (r Row) Failed() bool { return r.Status == StatusFailed }

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Color  bool      // Enable colored output
	Output io.Writer // Defaults to os.Stdout
}

func (o Options) writer() io.Writer {
	if o.Output == nil {
		return os.Stdout
	}
	return o.Output
}

// Formatter renders check rows.
type Formatter interface {
	FormatRows(rows []Row) error
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", &UnknownFormatError{Format: s}
	}
}

// UnknownFormatError is returned by ParseFormat for unsupported names.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return "unknown output format " + `"` + e.Format + `"` + " (use table, json or yaml)"
}

// New creates the formatter selected by options.Format.
func New(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return &jsonFormatter{options: options}
	case FormatYAML:
		return &yamlFormatter{options: options}
	default:
		return &TableFormatter{options: options}
	}
}
