package formatting

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	pkgstrings "specsync/pkg/strings"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) *TableFormatter {
	return &TableFormatter{options: options}
}

// FormatRows renders one line per file followed by a summary line.
func (f *TableFormatter) FormatRows(rows []Row) error {
	out := f.options.writer()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(out, f.colorize(text.FgYellow, "No object files found"))
		return err
	}

	t := f.createTable()
	t.AppendHeader(table.Row{
		f.colorize(text.FgHiCyan, "FILE"),
		f.colorize(text.FgHiCyan, "KIND"),
		f.colorize(text.FgHiCyan, "NAME"),
		f.colorize(text.FgHiCyan, "TYPE"),
		f.colorize(text.FgHiCyan, "STATUS"),
	})

	failed := 0
	for _, row := range rows {
		status := f.colorize(text.FgGreen, row.Status)
		if row.Failed() {
			failed++
			status = f.colorize(text.FgRed, pkgstrings.Truncate(row.Status+": "+row.Error, pkgstrings.DefaultCellMaxLen))
		}
		t.AppendRow(table.Row{row.File, row.Kind, row.Name, row.Type, status})
	}

	t.Render()

	_, err := fmt.Fprintf(out, "\n%s %s %s, %s %s\n",
		f.colorize(text.FgHiBlue, "Total:"),
		f.colorize(text.FgHiWhite, fmt.Sprint(len(rows))),
		f.colorize(text.FgHiBlue, "files"),
		f.colorize(text.FgHiWhite, fmt.Sprint(failed)),
		f.colorize(text.FgHiBlue, "failed"))
	return err
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(f.options.writer())
	t.SetStyle(table.StyleRounded)
	return t
}

func (f *TableFormatter) colorize(c text.Color, s string) string {
	if !f.options.Color {
		return s
	}
	return c.Sprint(s)
}

