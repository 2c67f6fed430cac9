package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteState atomically persists a Machine's current stage and transition
// history to path, via the same temp-file-then-rename idiom internal/llkb
// and internal/heal use for their own stores.
func WriteState(path string, m *Machine) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(dir, ".pipeline-state-*.tmp")
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

// LoadState reads a Machine previously written by WriteState. A missing
// file yields a fresh Machine at StateInitial rather than an error, so
// callers can load-then-advance on a journey's first pipeline transition.
func LoadState(path string) (*Machine, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewMachine(), nil
	}
	if err != nil {
		return nil, err
	}
	var m Machine
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
