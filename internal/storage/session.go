// ABOUTME: Snapshot load/save for SQLite storage.
// ABOUTME: Implements Repository by rewriting all session tables in one transaction.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/freely/internal/models"
)

// Save replaces the stored snapshot atomically.
func (d *DB) Save(s *models.Snapshot) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		"DELETE FROM learning_records",
		"DELETE FROM altitude_samples",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}

	insertRecord, err := tx.Prepare(`
		INSERT INTO learning_records (id, seq, word_id, known, answered_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare record insert: %w", err)
	}
	defer insertRecord.Close()

	for i, r := range s.Records {
		_, err := insertRecord.Exec(uuid.New().String(), i, r.WordID, r.Known, formatTime(r.Timestamp))
		if err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	p := s.Progress
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO user_progress
			(id, total_words_learned, correct_answers, incorrect_answers, current_streak, longest_streak, last_active_date)
		VALUES (1, ?, ?, ?, ?, ?, ?)
	`, p.TotalWordsLearned, p.CorrectAnswers, p.IncorrectAnswers, p.CurrentStreak, p.LongestStreak, formatTime(p.LastActiveDate))
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}

	m := s.Metrics
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO bird_metrics
			(id, distance, altitude, freedom, install_date, last_altitude_update)
		VALUES (1, ?, ?, ?, ?, ?)
	`, m.Distance, m.Altitude, m.Freedom, formatTime(m.InstallDate), formatTime(m.LastAltitudeUpdate))
	if err != nil {
		return fmt.Errorf("save bird metrics: %w", err)
	}

	for i, h := range m.AltitudeHistory {
		_, err := tx.Exec("INSERT INTO altitude_samples (seq, sampled_at, altitude) VALUES (?, ?, ?)",
			i, formatTime(h.Timestamp), h.Altitude)
		if err != nil {
			return fmt.Errorf("insert altitude sample %d: %w", i, err)
		}
	}

	_, err = tx.Exec("INSERT OR REPLACE INTO session_state (id, current_word_index) VALUES (1, ?)", s.Cursor)
	if err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load reads the stored snapshot.
func (d *DB) Load() (*models.Snapshot, error) {
	var w wireSnapshot

	err := d.db.QueryRow("SELECT current_word_index FROM session_state WHERE id = 1").Scan(&w.Cursor)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load cursor: %w", err)
	}

	if err := d.loadProgress(&w.Progress); err != nil {
		return nil, err
	}
	if err := d.loadMetrics(&w.Metrics); err != nil {
		return nil, err
	}
	if w.Records, err = d.loadRecords(); err != nil {
		return nil, err
	}

	return fromWire(w)
}

func (d *DB) loadProgress(p *models.UserProgress) error {
	var lastActive string
	err := d.db.QueryRow(`
		SELECT total_words_learned, correct_answers, incorrect_answers, current_streak, longest_streak, last_active_date
		FROM user_progress WHERE id = 1
	`).Scan(&p.TotalWordsLearned, &p.CorrectAnswers, &p.IncorrectAnswers, &p.CurrentStreak, &p.LongestStreak, &lastActive)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: missing user progress", ErrMalformedSnapshot)
	}
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	p.LastActiveDate, err = parseTime(lastActive)
	return err
}

func (d *DB) loadMetrics(m *models.BirdMetrics) error {
	var installDate, lastUpdate string
	err := d.db.QueryRow(`
		SELECT distance, altitude, freedom, install_date, last_altitude_update
		FROM bird_metrics WHERE id = 1
	`).Scan(&m.Distance, &m.Altitude, &m.Freedom, &installDate, &lastUpdate)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: missing bird metrics", ErrMalformedSnapshot)
	}
	if err != nil {
		return fmt.Errorf("load bird metrics: %w", err)
	}
	if m.InstallDate, err = parseTime(installDate); err != nil {
		return err
	}
	if m.LastAltitudeUpdate, err = parseTime(lastUpdate); err != nil {
		return err
	}

	rows, err := d.db.Query("SELECT sampled_at, altitude FROM altitude_samples ORDER BY seq")
	if err != nil {
		return fmt.Errorf("load altitude history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var at string
		var h models.AltitudeSample
		if err := rows.Scan(&at, &h.Altitude); err != nil {
			return fmt.Errorf("scan altitude sample: %w", err)
		}
		if h.Timestamp, err = parseTime(at); err != nil {
			return err
		}
		m.AltitudeHistory = append(m.AltitudeHistory, h)
	}
	return rows.Err()
}

func (d *DB) loadRecords() ([]models.LearningRecord, error) {
	rows, err := d.db.Query("SELECT word_id, known, answered_at FROM learning_records ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	records := []models.LearningRecord{}
	for rows.Next() {
		var r models.LearningRecord
		var at string
		if err := rows.Scan(&r.WordID, &r.Known, &at); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if r.Timestamp, err = parseTime(at); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// formatTime keeps nanosecond precision.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedSnapshot, s)
	}
	return t, nil
}
