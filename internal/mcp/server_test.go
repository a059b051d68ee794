// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers over a SQLite-backed session.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/freely/internal/models"
	"github.com/harperreed/freely/internal/session"
	"github.com/harperreed/freely/internal/storage"
	"github.com/harperreed/freely/internal/vocab"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testDeck = []models.Word{
	{ID: 1, Word: "soar", Meaning: "to fly high"},
	{ID: 2, Word: "glide", Meaning: "to move smoothly"},
}

// setupTestStore creates an initialized session over a temp database.
func setupTestStore(t *testing.T, words []models.Word) *session.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "freely-mcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := storage.Open(filepath.Join(tmpDir, "freely.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := session.New(db, vocab.Static(words))
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return store
}

func setupTestServer(t *testing.T, words []models.Word) *Server {
	t.Helper()
	server, err := NewServer(setupTestStore(t, words), "test")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t, testDeck)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.store == nil {
		t.Error("Expected non-nil store")
	}
}

func TestHandleCurrentWord(t *testing.T) {
	server := setupTestServer(t, testDeck)

	_, out, err := server.handleCurrentWord(context.Background(), &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.ID != 1 || out.Word != "soar" {
		t.Errorf("current word = %+v, want soar", out)
	}
}

func TestHandleCurrentWordEmptyDeck(t *testing.T) {
	server := setupTestServer(t, nil)

	_, out, err := server.handleCurrentWord(context.Background(), &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Message != "No words available." {
		t.Errorf("Message = %q", out.Message)
	}
}

func TestHandleAnswerWord(t *testing.T) {
	server := setupTestServer(t, testDeck)
	ctx := context.Background()

	tests := []struct {
		name       string
		input      answerInput
		wantWordID int
		wantNext   string
	}{
		{"current word known", answerInput{Known: true}, 1, "glide"},
		{"explicit word missed", answerInput{Known: false, WordID: 42}, 42, "soar"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := server.handleAnswerWord(ctx, &mcp.CallToolRequest{}, tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.NextWord == nil || out.NextWord.Word != tt.wantNext {
				t.Errorf("NextWord = %+v, want %s", out.NextWord, tt.wantNext)
			}
			if !models.IsValidAnimationState(out.Metrics.Animation) {
				t.Errorf("invalid animation %q", out.Metrics.Animation)
			}

			records := server.store.Records()
			if len(records) != i+1 {
				t.Fatalf("got %d records, want %d", len(records), i+1)
			}
			last := records[len(records)-1]
			if last.WordID != tt.wantWordID || last.Known != tt.input.Known {
				t.Errorf("last record = %+v", last)
			}
		})
	}
}

func TestHandleAnswerWordEmptyDeck(t *testing.T) {
	server := setupTestServer(t, nil)

	_, _, err := server.handleAnswerWord(context.Background(), &mcp.CallToolRequest{}, answerInput{Known: true, WordID: 1})
	if !errors.Is(err, session.ErrNoVocabulary) {
		t.Errorf("err = %v, want ErrNoVocabulary", err)
	}
}

func TestHandleGetMetrics(t *testing.T) {
	server := setupTestServer(t, testDeck)

	_, out, err := server.handleGetMetrics(context.Background(), &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Altitude != 50 {
		t.Errorf("Altitude = %v, want 50", out.Altitude)
	}
	if out.AltitudeBand != "mid" {
		t.Errorf("AltitudeBand = %q, want mid", out.AltitudeBand)
	}
	if out.DistanceLabel != "0h" {
		t.Errorf("DistanceLabel = %q, want 0h", out.DistanceLabel)
	}
}

func TestHandleGetProgress(t *testing.T) {
	server := setupTestServer(t, testDeck)
	ctx := context.Background()

	for _, known := range []bool{true, true, false, true} {
		if _, _, err := server.handleAnswerWord(ctx, &mcp.CallToolRequest{}, answerInput{Known: known}); err != nil {
			t.Fatalf("answer failed: %v", err)
		}
	}

	_, out, err := server.handleGetProgress(ctx, &mcp.CallToolRequest{}, emptyInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.TotalWordsLearned != 4 || out.CorrectAnswers != 3 || out.IncorrectAnswers != 1 {
		t.Errorf("progress = %+v", out)
	}
	if out.CurrentStreak != 1 || out.LongestStreak != 2 {
		t.Errorf("streaks = %d/%d, want 1/2", out.CurrentStreak, out.LongestStreak)
	}
	if out.Accuracy != 0.75 {
		t.Errorf("Accuracy = %v, want 0.75", out.Accuracy)
	}
}

func TestHandleListHistory(t *testing.T) {
	server := setupTestServer(t, testDeck)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := server.handleAnswerWord(ctx, &mcp.CallToolRequest{}, answerInput{Known: true}); err != nil {
			t.Fatalf("answer failed: %v", err)
		}
	}

	_, out, err := server.handleListHistory(ctx, &mcp.CallToolRequest{}, listHistoryInput{Limit: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	entries, ok := out.([]historyEntry)
	if !ok {
		t.Fatalf("output type = %T, want []historyEntry", out)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Word != "soar" || entries[1].Word != "glide" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestHandleListHistoryEmpty(t *testing.T) {
	server := setupTestServer(t, testDeck)

	_, out, err := server.handleListHistory(context.Background(), &mcp.CallToolRequest{}, listHistoryInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := out.(map[string]interface{}); !ok {
		t.Errorf("expected message map for empty history, got %T", out)
	}
}

func TestHandleListHistoryInvalidSince(t *testing.T) {
	server := setupTestServer(t, testDeck)

	_, _, err := server.handleListHistory(context.Background(), &mcp.CallToolRequest{}, listHistoryInput{Since: "last tuesday"})
	if err == nil {
		t.Error("expected error for invalid since")
	}
}

func TestHandleResetProgress(t *testing.T) {
	server := setupTestServer(t, testDeck)
	ctx := context.Background()

	if _, _, err := server.handleAnswerWord(ctx, &mcp.CallToolRequest{}, answerInput{Known: true}); err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	if _, _, err := server.handleResetProgress(ctx, &mcp.CallToolRequest{}, resetInput{}); err == nil {
		t.Error("expected error without confirm")
	}
	if len(server.store.Records()) != 1 {
		t.Error("unconfirmed reset must not clear records")
	}

	if _, _, err := server.handleResetProgress(ctx, &mcp.CallToolRequest{}, resetInput{Confirm: true}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(server.store.Records()) != 0 {
		t.Error("expected records cleared after reset")
	}
	if server.store.Cursor() != 0 {
		t.Error("expected cursor reset to 0")
	}
}

func TestResources(t *testing.T) {
	server := setupTestServer(t, testDeck)
	ctx := context.Background()

	if _, _, err := server.handleAnswerWord(ctx, &mcp.CallToolRequest{}, answerInput{Known: true}); err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	tests := []struct {
		uri     string
		handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)
		want    string
	}{
		{"freely://metrics", server.handleMetricsResource, `"animation"`},
		{"freely://progress", server.handleProgressResource, `"total_words_learned": 1`},
		{"freely://history", server.handleHistoryResource, `"word": "soar"`},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			result, err := tt.handler(ctx, &mcp.ReadResourceRequest{})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(result.Contents) == 0 {
				t.Fatal("Expected non-empty contents")
			}
			c := result.Contents[0]
			if c.URI != tt.uri {
				t.Errorf("URI = %s, want %s", c.URI, tt.uri)
			}
			if c.MIMEType != "application/json" {
				t.Errorf("MIMEType = %s, want application/json", c.MIMEType)
			}
			if !json.Valid([]byte(c.Text)) {
				t.Errorf("resource text is not JSON: %s", c.Text)
			}
			if !strings.Contains(c.Text, tt.want) {
				t.Errorf("resource text missing %s:\n%s", tt.want, c.Text)
			}
		})
	}
}
