// ABOUTME: Export and import of session snapshots.
// ABOUTME: Supports JSON, YAML, and a Markdown learning report.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/freely/internal/models"
	"gopkg.in/yaml.v3"
)

const exportVersion = "1.0"

// ExportData represents the full export format for a session.
type ExportData struct {
	Version    string       `json:"version" yaml:"version"`
	ExportedAt time.Time    `json:"exported_at" yaml:"exported_at"`
	Tool       string       `json:"tool" yaml:"tool"`
	Session    wireSnapshot `json:"session" yaml:"session"`
}

// GetAllData loads the stored snapshot and wraps it for export.
func GetAllData(repo Repository) (*ExportData, error) {
	s, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &ExportData{
		Version:    exportVersion,
		ExportedAt: time.Now(),
		Tool:       "freely",
		Session:    toWire(s),
	}, nil
}

// Snapshot validates the exported session and returns it.
func (e *ExportData) Snapshot() (*models.Snapshot, error) {
	return fromWire(e.Session)
}

// ImportData replaces the stored snapshot with the exported session.
func ImportData(repo Repository, data *ExportData) error {
	s, err := data.Snapshot()
	if err != nil {
		return err
	}
	if err := repo.Save(s); err != nil {
		return fmt.Errorf("save imported snapshot: %w", err)
	}
	return nil
}

// ExportJSON exports the stored snapshot as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports the stored snapshot as YAML.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// ParseExport decodes an export produced by ExportJSON or ExportYAML.
func ParseExport(raw []byte) (*ExportData, error) {
	var data ExportData
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}
	if data.Tool != "" && data.Tool != "freely" {
		return nil, fmt.Errorf("export was produced by %q, not freely", data.Tool)
	}
	return &data, nil
}

// ExportMarkdown renders a readable learning report.
// since limits the answer table to records after that time when non-nil.
func ExportMarkdown(repo Repository, since *time.Time) (string, error) {
	s, err := repo.Load()
	if err != nil {
		return "", fmt.Errorf("load snapshot: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# Freely Learning Report\n\n")
	sb.WriteString(fmt.Sprintf("Exported: %s\n\n", time.Now().Format("2006-01-02 15:04")))

	p := s.Progress
	sb.WriteString("## Progress\n\n")
	sb.WriteString("| Words | Correct | Incorrect | Streak | Longest |\n")
	sb.WriteString("|-------|---------|-----------|--------|---------|\n")
	sb.WriteString(fmt.Sprintf("| %d | %d | %d | %d | %d |\n\n",
		p.TotalWordsLearned, p.CorrectAnswers, p.IncorrectAnswers, p.CurrentStreak, p.LongestStreak))

	m := s.Metrics
	sb.WriteString("## Bird\n\n")
	sb.WriteString(fmt.Sprintf("- Installed: %s\n", m.InstallDate.Local().Format("2006-01-02 15:04")))
	sb.WriteString(fmt.Sprintf("- Distance: %.0f h\n", m.Distance))
	sb.WriteString(fmt.Sprintf("- Altitude: %.1f\n", m.Altitude))
	sb.WriteString(fmt.Sprintf("- Freedom: %.2f\n\n", m.Freedom))

	sb.WriteString("## Answers\n\n")
	var rows []models.LearningRecord
	for _, r := range s.Records {
		if since != nil && !r.Timestamp.After(*since) {
			continue
		}
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		sb.WriteString("No answers recorded.\n")
		return sb.String(), nil
	}

	sb.WriteString("| Time | Word | Result |\n")
	sb.WriteString("|------|------|--------|\n")
	for _, r := range rows {
		result := "missed"
		if r.Known {
			result = "known"
		}
		sb.WriteString(fmt.Sprintf("| %s | %d | %s |\n",
			r.Timestamp.Local().Format("2006-01-02 15:04"), r.WordID, result))
	}

	return sb.String(), nil
}
