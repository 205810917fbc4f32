package step

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Read decodes a step payload from r. It reads to EOF and delegates to
// [Parse], so validation failures carry the same coded errors.
func Read(r io.Reader) (Step, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Step{}, fmt.Errorf("read: %w", err)
	}
	return Parse(data)
}

// ReadFile reads and parses a step payload from path.
func ReadFile(path string) (Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Step{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal serializes a step to indented JSON. The output round-trips
// through [Parse] unchanged.
func Marshal(s Step) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// WriteFile writes a step payload to path as indented JSON.
func WriteFile(s Step, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal step: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
