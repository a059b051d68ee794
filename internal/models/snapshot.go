// ABOUTME: Snapshot of the session state that survives restarts.
// ABOUTME: Holds exactly the event log, progress, bird metrics and vocabulary cursor.
package models

import "time"

// Snapshot is the persisted subset of session state.
type Snapshot struct {
	Records  []LearningRecord
	Progress UserProgress
	Metrics  BirdMetrics
	Cursor   int
}

// NewSnapshot returns the initial snapshot for a first run at now.
func NewSnapshot(now time.Time) *Snapshot {
	return &Snapshot{
		Records:  []LearningRecord{},
		Progress: NewUserProgress(now),
		Metrics:  NewBirdMetrics(now),
		Cursor:   0,
	}
}
