package heal

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteLog persists a heal Log to path as indented JSON, atomically via
// temp-file-then-rename, mirroring internal/llkb's store-write idiom (same
// append-then-rewrite-whole-file convention, same atomicity guarantee).
func WriteLog(path string, log Log) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(dir, ".heal-log-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
