// ABOUTME: File-based snapshot storage as a single human-readable YAML document.
// ABOUTME: Writes go through a temp file and rename so a crash never leaves half a file.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/harperreed/freely/internal/models"
	"gopkg.in/yaml.v3"
)

const yamlFileName = "session.yaml"

// YAMLStore provides file-based storage for session snapshots.
type YAMLStore struct {
	dataDir string
}

// Compile-time check that YAMLStore implements Repository.
var _ Repository = (*YAMLStore)(nil)

// NewYAMLStore creates a YAML-backed store rooted at dataDir.
func NewYAMLStore(dataDir string) (*YAMLStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &YAMLStore{dataDir: dataDir}, nil
}

// Close releases resources. For YAMLStore this is a no-op.
func (s *YAMLStore) Close() error {
	return nil
}

// Path returns the snapshot file path.
func (s *YAMLStore) Path() string {
	return filepath.Join(s.dataDir, yamlFileName)
}

// Load reads and validates the snapshot file.
func (s *YAMLStore) Load() (*models.Snapshot, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var w wireSnapshot
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return fromWire(w)
}

// Save writes the snapshot file.
func (s *YAMLStore) Save(snap *models.Snapshot) error {
	data, err := yaml.Marshal(toWire(snap))
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dataDir, ".session-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("set snapshot permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
