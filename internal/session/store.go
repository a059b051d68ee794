// ABOUTME: Session store owning the vocabulary cursor, event log, progress and bird metrics.
// ABOUTME: Every operation runs under one mutex and persists a snapshot after committing.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/harperreed/freely/internal/bird"
	"github.com/harperreed/freely/internal/eventlog"
	"github.com/harperreed/freely/internal/logging"
	"github.com/harperreed/freely/internal/models"
	"github.com/harperreed/freely/internal/progress"
	"github.com/harperreed/freely/internal/storage"
	"github.com/harperreed/freely/internal/vocab"
)

// ErrNoVocabulary is returned by Answer when no words are loaded.
var ErrNoVocabulary = errors.New("no vocabulary loaded")

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Repository loads and saves session snapshots.
type Repository interface {
	Load() (*models.Snapshot, error)
	Save(*models.Snapshot) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp answers and run metric updates.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store is the single controller for a learning session.
type Store struct {
	mu     sync.Mutex
	repo   Repository
	source vocab.Source
	clock  Clock
	logger *slog.Logger

	vocabulary []models.Word
	cursor     int
	log        *eventlog.Log
	progress   models.UserProgress
	metrics    models.BirdMetrics
	animation  models.AnimationState
	persistErr error
}

// New creates a store holding initial state. Call Initialize to load the
// persisted session and the vocabulary.
func New(repo Repository, source vocab.Source, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		source: source,
		clock:  SystemClock{},
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "session")
	s.restore(models.NewSnapshot(s.clock.Now()))
	return s
}

// Initialize loads the persisted snapshot and the vocabulary, runs one
// metrics update and persists the result. Missing or malformed snapshots
// start a fresh session; a failed vocabulary load leaves the deck empty.
// Any other repository error is returned and nothing is saved.
func (s *Store) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	words := s.loadVocabulary(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	snap, err := s.loadSnapshot(now)
	if err != nil {
		return err
	}
	s.restore(snap)

	s.vocabulary = words
	if len(s.vocabulary) > 0 {
		s.cursor %= len(s.vocabulary)
	}

	s.metrics, s.animation = bird.Update(s.metrics, s.log, now)
	s.persist()
	return nil
}

// loadSnapshot returns the saved snapshot, or a fresh one when nothing is
// saved or the saved data is corrupt. Other read errors are returned so a
// session that could not be read is never overwritten.
func (s *Store) loadSnapshot(now time.Time) (*models.Snapshot, error) {
	if s.repo == nil {
		return models.NewSnapshot(now), nil
	}
	snap, err := s.repo.Load()
	switch {
	case errors.Is(err, storage.ErrNoSnapshot):
		s.logger.Info("no saved session, starting fresh")
		return models.NewSnapshot(now), nil
	case errors.Is(err, storage.ErrMalformedSnapshot):
		s.logger.Warn("saved session unreadable, starting fresh", "error", err)
		return models.NewSnapshot(now), nil
	case err != nil:
		return nil, fmt.Errorf("load session: %w", err)
	}
	if err := storage.Validate(snap); err != nil {
		s.logger.Warn("saved session invalid, starting fresh", "error", err)
		return models.NewSnapshot(now), nil
	}
	return snap, nil
}

func (s *Store) loadVocabulary(ctx context.Context) []models.Word {
	if s.source == nil {
		return nil
	}
	words, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load vocabulary", "error", err)
		return nil
	}
	s.logger.Debug("vocabulary loaded", "words", len(words))
	return words
}

func (s *Store) restore(snap *models.Snapshot) {
	s.log = eventlog.New(snap.Records)
	s.progress = snap.Progress
	s.metrics = snap.Metrics.Clone()
	s.cursor = snap.Cursor
	s.animation = bird.Classify(s.metrics.Altitude, s.metrics.Freedom)
}

// Answer records an answer for wordID, advances to the next word and
// recomputes the bird. The word id is not checked against the deck.
func (s *Store) Answer(wordID int, known bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.vocabulary) == 0 {
		return ErrNoVocabulary
	}

	now := s.clock.Now()
	log := s.log.Clone()
	log.Append(models.NewLearningRecord(wordID, known, now))
	prog := progress.Apply(s.progress, known, now)
	cursor := (s.cursor + 1) % len(s.vocabulary)
	metrics, animation := bird.Update(s.metrics, log, now)

	s.log = log
	s.progress = prog
	s.cursor = cursor
	s.metrics = metrics
	s.animation = animation

	s.logger.Debug("answer recorded",
		"word_id", wordID,
		"known", known,
		"altitude", metrics.Altitude,
		"animation", animation)

	s.persist()
	return nil
}

// ResetProgress clears the log and restores initial progress and metrics,
// with the install date moved to now.
func (s *Store) ResetProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.restore(models.NewSnapshot(s.clock.Now()))
	s.animation = models.AnimationFly
	s.logger.Info("progress reset")
	s.persist()
}

// persist saves the committed state. Failures are logged and remembered
// but never undo the in-memory state. Callers hold s.mu.
func (s *Store) persist() {
	if s.repo == nil {
		return
	}
	snap := &models.Snapshot{
		Records:  s.log.Records(),
		Progress: s.progress,
		Metrics:  s.metrics.Clone(),
		Cursor:   s.cursor,
	}
	if err := s.repo.Save(snap); err != nil {
		s.logger.Error("failed to persist session", "error", err)
		s.persistErr = err
		return
	}
	s.persistErr = nil
}

// CurrentWord returns the word under the cursor, or false with no vocabulary.
func (s *Store) CurrentWord() (models.Word, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.vocabulary) == 0 {
		return models.Word{}, false
	}
	return s.vocabulary[s.cursor%len(s.vocabulary)], true
}

// MetricsSnapshot returns the committed altitude, freedom and animation with
// distance recomputed from the clock.
func (s *Store) MetricsSnapshot() bird.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()

	return bird.Reading{
		Distance:  bird.Distance(s.metrics.InstallDate, s.clock.Now()),
		Altitude:  s.metrics.Altitude,
		Freedom:   s.metrics.Freedom,
		Animation: s.animation,
	}
}

// Preview projects the bird at the current time without committing.
func (s *Store) Preview() bird.Reading {
	s.mu.Lock()
	defer s.mu.Unlock()

	return bird.Project(s.metrics, s.log, s.clock.Now())
}

// Metrics returns a copy of the committed bird metrics.
func (s *Store) Metrics() models.BirdMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.metrics.Clone()
}

// ProgressSnapshot returns the cumulative progress counters.
func (s *Store) ProgressSnapshot() models.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.progress
}

// Records returns every learning record in order.
func (s *Store) Records() []models.LearningRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.log.Records()
}

// Recent returns up to limit records, newest first, answered after since.
// A zero since includes every record.
func (s *Store) Recent(limit int, since time.Time) []models.LearningRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if since.IsZero() {
		return s.log.Recent(limit)
	}
	return eventlog.New(s.log.RecordsSince(since)).Recent(limit)
}

// Vocabulary returns a copy of the loaded deck.
func (s *Store) Vocabulary() []models.Word {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.Word(nil), s.vocabulary...)
}

// Cursor returns the index of the current word.
func (s *Store) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cursor
}

// LastPersistError returns the error from the most recent save, or nil.
func (s *Store) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persistErr
}
