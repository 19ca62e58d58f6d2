package fileutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

// WriteIfChanged writes data to path, creating parent directories as needed,
// and reports whether the file actually changed. Unchanged files keep their
// mtime so downstream watchers and bundler caches stay warm.
func WriteIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, err
	}
	return true, nil
}

// PrintJSON writes value as indented JSON to w.
func PrintJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
