// ABOUTME: Data migration between freely storage backends.
// ABOUTME: Copies the stored snapshot from source to destination.

package storage

import (
	"errors"
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Records         int
	AltitudeSamples int
}

// MigrateData copies the snapshot stored in src to dst, replacing whatever
// dst held. Migrating from an empty source is an error.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	s, err := src.Load()
	if errors.Is(err, ErrNoSnapshot) {
		return nil, fmt.Errorf("source has no saved session")
	}
	if err != nil {
		return nil, fmt.Errorf("load source snapshot: %w", err)
	}

	if err := dst.Save(s); err != nil {
		return nil, fmt.Errorf("save destination snapshot: %w", err)
	}

	return &MigrateSummary{
		Records:         len(s.Records),
		AltitudeSamples: len(s.Metrics.AltitudeHistory),
	}, nil
}
