package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteJSON writes v as indented JSON to path, creating parent
// directories as needed. Output failures are fatal to the run and are
// reported with the path.
func WriteJSON(path string, v interface{}) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// WriteAll writes the three report views into dir as full.json,
// summary.json, and external.json.
func WriteAll(dir string, r *AssemblyReport) error {
	if err := WriteJSON(filepath.Join(dir, "full.json"), r); err != nil {
		return err
	}
	if err := WriteJSON(filepath.Join(dir, "summary.json"), BuildSummary(r)); err != nil {
		return err
	}
	return WriteJSON(filepath.Join(dir, "external.json"), BuildExternal(r))
}
