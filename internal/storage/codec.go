// ABOUTME: Serialize/deserialize boundary for snapshots shared by every backend.
// ABOUTME: Validates invariants with go-playground/validator before data reaches a session.
package storage

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/harperreed/freely/internal/models"
)

// wireSnapshot is the on-disk shape: exactly the four persisted fields.
type wireSnapshot struct {
	Records  []models.LearningRecord `json:"learning_records" yaml:"learning_records" validate:"dive"`
	Progress models.UserProgress     `json:"user_progress" yaml:"user_progress"`
	Metrics  models.BirdMetrics      `json:"bird_metrics" yaml:"bird_metrics"`
	Cursor   int                     `json:"current_word_index" yaml:"current_word_index" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		p := sl.Current().Interface().(models.UserProgress)
		if p.TotalWordsLearned != p.CorrectAnswers+p.IncorrectAnswers {
			sl.ReportError(p.TotalWordsLearned, "TotalWordsLearned", "total_words_learned", "answersum", "")
		}
	}, models.UserProgress{})
	return v
}

func toWire(s *models.Snapshot) wireSnapshot {
	records := s.Records
	if records == nil {
		records = []models.LearningRecord{}
	}
	return wireSnapshot{
		Records:  records,
		Progress: s.Progress,
		Metrics:  s.Metrics,
		Cursor:   s.Cursor,
	}
}

// fromWire validates w and converts it to a snapshot.
func fromWire(w wireSnapshot) (*models.Snapshot, error) {
	if err := validate.Struct(w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	s := &models.Snapshot{
		Records:  w.Records,
		Progress: w.Progress,
		Metrics:  w.Metrics,
		Cursor:   w.Cursor,
	}
	if s.Records == nil {
		s.Records = []models.LearningRecord{}
	}
	return s, nil
}

// Validate reports whether s satisfies the snapshot invariants.
func Validate(s *models.Snapshot) error {
	_, err := fromWire(toWire(s))
	return err
}
