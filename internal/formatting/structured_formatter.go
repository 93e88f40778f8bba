package formatting

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type jsonFormatter struct {
	options Options
}

func (f *jsonFormatter) FormatRows(rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	_, err := fmt.Fprintln(f.options.writer(), PrettyJSON(rows))
	return err
}

type yamlFormatter struct {
	options Options
}

func (f *yamlFormatter) FormatRows(rows []Row) error {
	enc := yaml.NewEncoder(f.options.writer())
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	return enc.Close()
}
