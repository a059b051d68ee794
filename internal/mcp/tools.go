// ABOUTME: MCP tool implementations for the learning session.
// ABOUTME: Lets an assistant quiz the user, record answers, and read the bird.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/freely/internal/bird"
	"github.com/harperreed/freely/internal/models"
	"github.com/harperreed/freely/internal/progress"
	"github.com/harperreed/freely/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "current_word",
		Description: "Show the flashcard the user should answer next",
	}, s.handleCurrentWord)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "answer_word",
		Description: "Record whether the user knew a word and advance to the next card",
	}, s.handleAnswerWord)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_metrics",
		Description: "Get the bird's distance, altitude, freedom and animation state",
	}, s.handleGetMetrics)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progress",
		Description: "Get answer counts, streaks and accuracy",
	}, s.handleGetProgress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_history",
		Description: "List recent answers, newest first",
	}, s.handleListHistory)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_progress",
		Description: "Erase all answers and restart the bird from scratch",
	}, s.handleResetProgress)
}

// Tool input/output types

type emptyInput struct{}

type wordOutput struct {
	ID            int    `json:"id,omitempty"`
	Word          string `json:"word,omitempty"`
	Meaning       string `json:"meaning,omitempty"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Example       string `json:"example,omitempty"`
	Message       string `json:"message"`
}

type answerInput struct {
	Known  bool `json:"known" jsonschema:"Whether the user knew the word"`
	WordID int  `json:"word_id,omitempty" jsonschema:"Word ID to record; defaults to the current word"`
}

type metricsOutput struct {
	Distance      float64 `json:"distance"`
	DistanceLabel string  `json:"distance_label"`
	Altitude      float64 `json:"altitude"`
	AltitudeBand  string  `json:"altitude_band"`
	Freedom       float64 `json:"freedom"`
	FreedomLevel  string  `json:"freedom_level"`
	Animation     string  `json:"animation"`
}

type answerOutput struct {
	Metrics  metricsOutput `json:"metrics"`
	NextWord *wordOutput   `json:"next_word,omitempty"`
	Message  string        `json:"message"`
}

type progressOutput struct {
	TotalWordsLearned int     `json:"total_words_learned"`
	CorrectAnswers    int     `json:"correct_answers"`
	IncorrectAnswers  int     `json:"incorrect_answers"`
	CurrentStreak     int     `json:"current_streak"`
	LongestStreak     int     `json:"longest_streak"`
	Accuracy          float64 `json:"accuracy"`
	LastActiveDate    string  `json:"last_active_date"`
}

type listHistoryInput struct {
	Limit int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
	Since string `json:"since,omitempty" jsonschema:"Only answers after this timestamp (ISO 8601)"`
}

type historyEntry struct {
	WordID    int    `json:"word_id"`
	Word      string `json:"word,omitempty"`
	Known     bool   `json:"known"`
	Timestamp string `json:"timestamp"`
}

type resetInput struct {
	Confirm bool `json:"confirm" jsonschema:"Must be true to erase progress"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

func toWordOutput(w models.Word) wordOutput {
	return wordOutput{
		ID:            w.ID,
		Word:          w.Word,
		Meaning:       w.Meaning,
		Pronunciation: w.Pronunciation,
		Example:       w.Example,
		Message:       fmt.Sprintf("Current word: %s", w.Word),
	}
}

func toMetricsOutput(r bird.Reading) metricsOutput {
	return metricsOutput{
		Distance:      r.Distance,
		DistanceLabel: bird.FormatDistance(r.Distance),
		Altitude:      r.Altitude,
		AltitudeBand:  bird.AltitudeBand(r.Altitude),
		Freedom:       r.Freedom,
		FreedomLevel:  bird.FreedomLevel(r.Freedom),
		Animation:     string(r.Animation),
	}
}

func toProgressOutput(p models.UserProgress) progressOutput {
	return progressOutput{
		TotalWordsLearned: p.TotalWordsLearned,
		CorrectAnswers:    p.CorrectAnswers,
		IncorrectAnswers:  p.IncorrectAnswers,
		CurrentStreak:     p.CurrentStreak,
		LongestStreak:     p.LongestStreak,
		Accuracy:          progress.Accuracy(p),
		LastActiveDate:    p.LastActiveDate.Format(time.RFC3339),
	}
}

// Tool handlers

func (s *Server) handleCurrentWord(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, wordOutput, error) {
	w, ok := s.store.CurrentWord()
	if !ok {
		return nil, wordOutput{Message: "No words available."}, nil
	}
	return nil, toWordOutput(w), nil
}

func (s *Server) handleAnswerWord(ctx context.Context, req *mcp.CallToolRequest, input answerInput) (*mcp.CallToolResult, answerOutput, error) {
	wordID := input.WordID
	if wordID == 0 {
		w, ok := s.store.CurrentWord()
		if !ok {
			return nil, answerOutput{}, session.ErrNoVocabulary
		}
		wordID = w.ID
	}

	if err := s.store.Answer(wordID, input.Known); err != nil {
		if errors.Is(err, session.ErrNoVocabulary) {
			return nil, answerOutput{}, err
		}
		return nil, answerOutput{}, fmt.Errorf("failed to record answer: %w", err)
	}

	result := "missed"
	if input.Known {
		result = "known"
	}
	out := answerOutput{
		Metrics: toMetricsOutput(s.store.MetricsSnapshot()),
		Message: fmt.Sprintf("Recorded word %d as %s", wordID, result),
	}
	if next, ok := s.store.CurrentWord(); ok {
		w := toWordOutput(next)
		out.NextWord = &w
	}
	if err := s.store.LastPersistError(); err != nil {
		out.Message += fmt.Sprintf(" (warning: not saved: %v)", err)
	}
	return nil, out, nil
}

func (s *Server) handleGetMetrics(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, metricsOutput, error) {
	return nil, toMetricsOutput(s.store.MetricsSnapshot()), nil
}

func (s *Server) handleGetProgress(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, progressOutput, error) {
	return nil, toProgressOutput(s.store.ProgressSnapshot()), nil
}

func (s *Server) handleListHistory(ctx context.Context, req *mcp.CallToolRequest, input listHistoryInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var since time.Time
	if input.Since != "" {
		t, err := time.Parse(time.RFC3339, input.Since)
		if err != nil {
			t, err = time.Parse("2006-01-02", input.Since)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("invalid since timestamp: %s", input.Since)
		}
		since = t
	}

	entries := s.history(input.Limit, since)
	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": "No answers recorded."}, nil
	}
	return nil, entries, nil
}

func (s *Server) history(limit int, since time.Time) []historyEntry {
	words := make(map[int]string)
	for _, w := range s.store.Vocabulary() {
		words[w.ID] = w.Word
	}

	records := s.store.Recent(limit, since)
	entries := make([]historyEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, historyEntry{
			WordID:    r.WordID,
			Word:      words[r.WordID],
			Known:     r.Known,
			Timestamp: r.Timestamp.Format(time.RFC3339),
		})
	}
	return entries
}

func (s *Server) handleResetProgress(ctx context.Context, req *mcp.CallToolRequest, input resetInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !input.Confirm {
		return nil, simpleOutput{}, fmt.Errorf("reset_progress requires confirm=true")
	}
	s.store.ResetProgress()
	return nil, simpleOutput{Message: "Progress reset. The bird starts a new flight."}, nil
}
