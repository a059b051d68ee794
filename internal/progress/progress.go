// ABOUTME: Progress aggregator folding answers into cumulative counters.
// ABOUTME: Pure functions over models.UserProgress; no hidden state.
package progress

import (
	"time"

	"github.com/harperreed/freely/internal/models"
)

// Apply returns p updated with one answer given at now.
func Apply(p models.UserProgress, known bool, now time.Time) models.UserProgress {
	next := p
	next.TotalWordsLearned++
	if known {
		next.CorrectAnswers++
		next.CurrentStreak++
	} else {
		next.IncorrectAnswers++
		next.CurrentStreak = 0
	}
	next.LongestStreak = max(p.LongestStreak, next.CurrentStreak)
	next.LastActiveDate = now
	return next
}

// Accuracy is the fraction of correct answers, or 0 before any answer.
func Accuracy(p models.UserProgress) float64 {
	answered := p.CorrectAnswers + p.IncorrectAnswers
	if answered == 0 {
		return 0
	}
	return float64(p.CorrectAnswers) / float64(answered)
}

// Fold rebuilds progress from a complete record sequence.
// The zero-record result is last active at start.
func Fold(records []models.LearningRecord, start time.Time) models.UserProgress {
	p := models.NewUserProgress(start)
	for _, r := range records {
		p = Apply(p, r.Known, r.Timestamp)
	}
	return p
}
