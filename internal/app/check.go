package app

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/apimachinery/pkg/util/sets"

	"specsync/internal/formatting"
	"specsync/internal/loader"
)

// Check loads every eligible file in dir once and reports one row per file,
// ordered by file key. The returned count is the number of files that failed
// to load.
func Check(dir string) ([]formatting.Row, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	keys := sets.New[string]()
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if loader.Eligible(path) {
			keys.Insert(loader.Key(path))
		}
	}

	rows := make([]formatting.Row, 0, keys.Len())
	failed := 0
	for _, key := range sets.List(keys) {
		obj, err := loader.Load(filepath.Join(dir, key))
		if err != nil {
			failed++
			rows = append(rows, formatting.Row{File: key, Status: formatting.StatusFailed, Error: err.Error()})
			continue
		}
		rows = append(rows, formatting.Row{
			File:   key,
			Kind:   obj.Kind,
			Name:   obj.Metadata.Name,
			Type:   obj.Spec.TypeName(),
			Status: formatting.StatusOK,
		})
	}
	return rows, failed, nil
}
