// ABOUTME: Append-only event log of flashcard answers.
// ABOUTME: Supports recent-activity queries used by the altitude computation.
package eventlog

import (
	"time"

	"github.com/harperreed/freely/internal/models"
)

// Log is an append-only, insertion-ordered sequence of learning records.
// There is no way to mutate or remove a record once appended.
type Log struct {
	records []models.LearningRecord
}

// New builds a log from previously persisted records, preserving order.
func New(records []models.LearningRecord) *Log {
	return &Log{records: append([]models.LearningRecord(nil), records...)}
}

// Append adds a record to the end of the log.
// The word id is not checked against any vocabulary.
func (l *Log) Append(r models.LearningRecord) {
	l.records = append(l.records, r)
}

// RecordsSince returns the records with a timestamp strictly after t, in order.
func (l *Log) RecordsSince(t time.Time) []models.LearningRecord {
	var out []models.LearningRecord
	for _, r := range l.records {
		if r.Timestamp.After(t) {
			out = append(out, r)
		}
	}
	return out
}

// CountSince is len(RecordsSince(t)) without the allocation.
func (l *Log) CountSince(t time.Time) int {
	n := 0
	for _, r := range l.records {
		if r.Timestamp.After(t) {
			n++
		}
	}
	return n
}

// Records returns a copy of every record in insertion order.
func (l *Log) Records() []models.LearningRecord {
	return append([]models.LearningRecord{}, l.records...)
}

// Recent returns up to limit records, most recent first.
// A limit of zero or less returns the whole log.
func (l *Log) Recent(limit int) []models.LearningRecord {
	n := len(l.records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.LearningRecord, 0, n)
	for i := len(l.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.records[i])
	}
	return out
}

// Len returns the number of records.
func (l *Log) Len() int {
	return len(l.records)
}

// Clone returns an independent copy of the log.
func (l *Log) Clone() *Log {
	return New(l.records)
}
