// ABOUTME: LearningRecord model, one entry per answered flashcard.
// ABOUTME: Records are immutable once created and only ever appended.
package models

import "time"

// LearningRecord captures a single answer to a flashcard.
type LearningRecord struct {
	WordID    int       `json:"word_id" yaml:"word_id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp" validate:"required"`
	Known     bool      `json:"known" yaml:"known"`
}

// NewLearningRecord creates a record for wordID stamped at the given time.
func NewLearningRecord(wordID int, known bool, at time.Time) LearningRecord {
	return LearningRecord{
		WordID:    wordID,
		Timestamp: at,
		Known:     known,
	}
}
