package planner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DataStorage persists and restores planner exploration graphs. The on-disk
// format is owned by the storage implementation and opaque to the rest of
// the subsystem.
type DataStorage interface {
	// Store serializes the graph to the given path.
	Store(data *PlannerData, path string) error

	// Load deserializes a graph from the given path.
	Load(path string) (*PlannerData, error)
}

// FileDataStorage stores planner data as JSON files on the local filesystem.
// It is the default storage backend.
type FileDataStorage struct{}

// NewFileDataStorage creates a FileDataStorage.
func NewFileDataStorage() *FileDataStorage {
	return &FileDataStorage{}
}

// Store writes the graph to path, creating parent directories as needed.
func (s *FileDataStorage) Store(data *PlannerData, path string) error {
	if data == nil {
		return fmt.Errorf("planner data cannot be nil")
	}
	if path == "" {
		return fmt.Errorf("storage path cannot be empty")
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding planner data: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating storage directory: %w", err)
		}
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("writing planner data to %q: %w", path, err)
	}
	return nil
}

// Load reads a graph back from path.
func (s *FileDataStorage) Load(path string) (*PlannerData, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	encoded, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading planner data from %q: %w", path, err)
	}
	data := NewPlannerData()
	if err := json.Unmarshal(encoded, data); err != nil {
		return nil, fmt.Errorf("decoding planner data from %q: %w", path, err)
	}
	return data, nil
}
