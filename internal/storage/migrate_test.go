// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Verifies snapshots survive SQLite, YAML, and Badger migrations.
package storage

import (
	"testing"
)

func TestMigrateData(t *testing.T) {
	for _, src := range backends() {
		for _, dst := range backends() {
			if src.name == dst.name {
				continue
			}
			t.Run(src.name+"_to_"+dst.name, func(t *testing.T) {
				from := src.open(t)
				to := dst.open(t)

				if err := from.Save(sampleSnapshot()); err != nil {
					t.Fatalf("Save failed: %v", err)
				}

				summary, err := MigrateData(from, to)
				if err != nil {
					t.Fatalf("MigrateData failed: %v", err)
				}
				if summary.Records != 3 {
					t.Errorf("Records = %d, want 3", summary.Records)
				}
				if summary.AltitudeSamples != 3 {
					t.Errorf("AltitudeSamples = %d, want 3", summary.AltitudeSamples)
				}

				got, err := to.Load()
				if err != nil {
					t.Fatalf("Load from destination failed: %v", err)
				}
				assertSnapshotsEqual(t, sampleSnapshot(), got)
			})
		}
	}
}

func TestMigrateDataEmptySource(t *testing.T) {
	from := setupTestDB(t)
	to, err := NewYAMLStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewYAMLStore failed: %v", err)
	}

	if _, err := MigrateData(from, to); err == nil {
		t.Error("expected error migrating from an empty source")
	}
}
