// ABOUTME: Repository interface for persisted session snapshots.
// ABOUTME: Defines the load/save contract and the sentinel errors backends return.
package storage

import (
	"errors"

	"github.com/harperreed/freely/internal/models"
)

var (
	// ErrNoSnapshot is returned by Load when nothing has been saved yet.
	ErrNoSnapshot = errors.New("no saved session")

	// ErrMalformedSnapshot is returned by Load when stored data cannot be
	// decoded or violates the snapshot invariants.
	ErrMalformedSnapshot = errors.New("malformed session snapshot")
)

// Repository defines the storage interface for session snapshots.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Load returns the last saved snapshot, ErrNoSnapshot, or an error
	// wrapping ErrMalformedSnapshot.
	Load() (*models.Snapshot, error)

	// Save replaces the stored snapshot.
	Save(s *models.Snapshot) error

	// Lifecycle
	Close() error
}
