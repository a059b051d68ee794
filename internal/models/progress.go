// ABOUTME: UserProgress model with cumulative answer counters and streaks.
// ABOUTME: Derived entirely from the event log; see internal/progress for the fold.
package models

import "time"

// UserProgress holds cumulative learning counters.
//
// TotalWordsLearned always equals CorrectAnswers + IncorrectAnswers and
// LongestStreak is never below CurrentStreak.
type UserProgress struct {
	TotalWordsLearned int       `json:"total_words_learned" yaml:"total_words_learned" validate:"gte=0"`
	CorrectAnswers    int       `json:"correct_answers" yaml:"correct_answers" validate:"gte=0"`
	IncorrectAnswers  int       `json:"incorrect_answers" yaml:"incorrect_answers" validate:"gte=0"`
	CurrentStreak     int       `json:"current_streak" yaml:"current_streak" validate:"gte=0"`
	LongestStreak     int       `json:"longest_streak" yaml:"longest_streak" validate:"gtefield=CurrentStreak"`
	LastActiveDate    time.Time `json:"last_active_date" yaml:"last_active_date"`
}

// NewUserProgress returns zeroed progress last active at now.
func NewUserProgress(now time.Time) UserProgress {
	return UserProgress{LastActiveDate: now}
}
