// ABOUTME: Tests for CLI helpers and command execution.
// ABOUTME: Runs commands against a temp data directory and checks stored state.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/freely/internal/models"
	"github.com/harperreed/freely/internal/storage"
)

// setupTestCLI redirects config and data to a temp directory and returns the
// freely data directory inside it.
func setupTestCLI(t *testing.T) string {
	t.Helper()
	color.NoColor = true

	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range []string{"FREELY_BACKEND", "FREELY_DATA_DIR", "FREELY_VOCABULARY", "FREELY_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	resetFlags()
	t.Cleanup(func() {
		if repo != nil {
			repo.Close()
			repo = nil
		}
	})
	return filepath.Join(tmpDir, "data", "freely")
}

func resetFlags() {
	answerWordID = 0
	historyLimit = 20
	historySince = ""
	resetForce = false
	exportFormat = "json"
	exportOutput = ""
	exportSince = ""
	importForce = false
	migrateFrom = ""
	migrateTo = ""
	migrateForce = false
	migrateSwitch = false
	watchEvery = time.Minute
	watchCount = 0
	skillSkipConfirm = false
}

// run executes the root command with args and stdin, returning stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

func loadSnapshot(t *testing.T, dataDir string) *models.Snapshot {
	t.Helper()
	db, err := storage.Open(storage.DBPath(dataDir))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()
	snap, err := db.Load()
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	return snap
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"yes", true, false},
		{"Y", true, false},
		{"known", true, false},
		{"no", false, false},
		{" n ", false, false},
		{"unknown", false, false},
		{"maybe", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		got, err := parseAnswer(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAnswer(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAnswer(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2025-01-31 08:30", false},
		{"2025-01-31T08:30", false},
		{"2025-01-31", false},
		{"2025-01-31T08:30:00Z", false},
		{"2025-01-31T08:30:00+05:00", false},
		{"31-01-2025", true},
		{"not a date", true},
		{"", true},
	}
	for _, tt := range tests {
		result, err := parseTime(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && result.IsZero() {
			t.Errorf("parseTime(%q) returned zero time", tt.input)
		}
	}

	got, _ := parseTime("2025-01-31 08:30")
	if got.Hour() != 8 || got.Minute() != 30 || got.Day() != 31 {
		t.Errorf("parseTime value = %v", got)
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		s      string
		length int
		want   string
	}{
		{"fly", 5, "fly  "},
		{"glide", 5, "glide"},
		{"toolong", 3, "toolong"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := padRight(tt.s, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.s, tt.length, got, tt.want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"card", "answer", "study", "status", "history", "reset", "vocab",
		"export", "import", "migrate", "watch", "mcp", "install-skill"}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("expected %s command to be registered", name)
		}
	}
}

func TestCommandAliases(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"c"}, "card"},
		{[]string{"a"}, "answer"},
		{[]string{"st"}, "status"},
		{[]string{"log"}, "history"},
		{[]string{"v", "ls"}, "list"},
	}
	for _, tt := range tests {
		cmd, _, err := rootCmd.Find(tt.args)
		if err != nil {
			t.Errorf("Find(%v) failed: %v", tt.args, err)
			continue
		}
		if cmd.Name() != tt.want {
			t.Errorf("Find(%v) = %s, want %s", tt.args, cmd.Name(), tt.want)
		}
	}
}

func TestLongDescriptions(t *testing.T) {
	for _, c := range []string{"answer", "history", "export", "mcp", "migrate", "watch", "reset"} {
		cmd, _, err := rootCmd.Find([]string{c})
		if err != nil {
			t.Fatalf("Find(%s) failed: %v", c, err)
		}
		if cmd.Long == "" {
			t.Errorf("%s has no Long help", c)
		}
	}
}

func TestCardShowsFirstWord(t *testing.T) {
	setupTestCLI(t)

	out := mustRun(t, "card")
	if !strings.Contains(out, "abundant") {
		t.Errorf("expected first built-in word, got:\n%s", out)
	}
}

func TestAnswerAdvancesDeck(t *testing.T) {
	dataDir := setupTestCLI(t)

	out := mustRun(t, "answer", "yes")
	if !strings.Contains(out, "known") {
		t.Errorf("expected known confirmation, got:\n%s", out)
	}
	if !strings.Contains(out, "brisk") {
		t.Errorf("expected next card after answering, got:\n%s", out)
	}

	mustRun(t, "a", "n")

	snap := loadSnapshot(t, dataDir)
	if len(snap.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(snap.Records))
	}
	if snap.Records[0].WordID != 1 || !snap.Records[0].Known {
		t.Errorf("first record = %+v", snap.Records[0])
	}
	if snap.Records[1].WordID != 2 || snap.Records[1].Known {
		t.Errorf("second record = %+v", snap.Records[1])
	}
	if snap.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", snap.Cursor)
	}
	if snap.Progress.TotalWordsLearned != 2 || snap.Progress.CurrentStreak != 0 {
		t.Errorf("progress = %+v", snap.Progress)
	}
}

func TestAnswerWithWordFlag(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "answer", "yes", "--word", "7")

	snap := loadSnapshot(t, dataDir)
	if len(snap.Records) != 1 || snap.Records[0].WordID != 7 {
		t.Errorf("records = %+v", snap.Records)
	}
}

func TestAnswerInvalid(t *testing.T) {
	setupTestCLI(t)

	if _, err := run(t, "", "answer", "maybe"); err == nil {
		t.Error("expected error for invalid answer")
	}
	if _, err := run(t, "", "answer"); err == nil {
		t.Error("expected error for missing answer")
	}
}

func TestStudy(t *testing.T) {
	dataDir := setupTestCLI(t)

	out, err := run(t, "y\nn\nmaybe\ny\nq\n", "study")
	if err != nil {
		t.Fatalf("study failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Answered 3 cards") {
		t.Errorf("expected summary, got:\n%s", out)
	}
	if !strings.Contains(out, "invalid answer") {
		t.Errorf("expected complaint about invalid input, got:\n%s", out)
	}

	snap := loadSnapshot(t, dataDir)
	if len(snap.Records) != 3 {
		t.Errorf("got %d records, want 3", len(snap.Records))
	}
}

func TestStudyStopsAtEOF(t *testing.T) {
	setupTestCLI(t)

	out, err := run(t, "y\n", "study")
	if err != nil {
		t.Fatalf("study failed: %v", err)
	}
	if !strings.Contains(out, "Answered 1 cards") {
		t.Errorf("expected summary, got:\n%s", out)
	}
}

func TestStatus(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "answer", "yes")
	out := mustRun(t, "status")

	for _, want := range []string{"distance", "altitude", "freedom", "answered 1", "accuracy 100%"} {
		if !strings.Contains(out, want) {
			t.Errorf("status missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "fly") && !strings.Contains(out, "glide") {
		t.Errorf("status missing animation:\n%s", out)
	}
}

func TestHistory(t *testing.T) {
	setupTestCLI(t)

	out := mustRun(t, "history")
	if !strings.Contains(out, "No answers recorded.") {
		t.Errorf("expected empty history, got:\n%s", out)
	}

	mustRun(t, "answer", "yes")
	mustRun(t, "answer", "no")

	out = mustRun(t, "history")
	if !strings.Contains(out, "abundant") || !strings.Contains(out, "brisk") {
		t.Errorf("history missing words:\n%s", out)
	}
	if strings.Index(out, "brisk") > strings.Index(out, "abundant") {
		t.Errorf("history should be newest first:\n%s", out)
	}

	out = mustRun(t, "log", "-n", "1")
	if strings.Contains(out, "abundant") {
		t.Errorf("limit not applied:\n%s", out)
	}

	out = mustRun(t, "history", "--since", "2099-01-01")
	if !strings.Contains(out, "No answers recorded.") {
		t.Errorf("since filter not applied:\n%s", out)
	}

	if _, err := run(t, "", "history", "--since", "yesterday"); err == nil {
		t.Error("expected error for invalid --since")
	}
}

func TestReset(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "answer", "yes")

	out, err := run(t, "n\n", "reset")
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if !strings.Contains(out, "Reset canceled.") {
		t.Errorf("expected cancel message, got:\n%s", out)
	}
	if len(loadSnapshot(t, dataDir).Records) != 1 {
		t.Fatal("canceled reset must keep records")
	}

	mustRun(t, "reset", "--force")

	snap := loadSnapshot(t, dataDir)
	if len(snap.Records) != 0 || snap.Cursor != 0 || snap.Metrics.Altitude != 50 {
		t.Errorf("snapshot after reset = %+v", snap)
	}
}

func TestVocabImportAndList(t *testing.T) {
	dataDir := setupTestCLI(t)

	deck := filepath.Join(t.TempDir(), "deck.csv")
	content := "id,word,meaning\n1,soar,to fly high\n2,glide,to move smoothly\n"
	if err := os.WriteFile(deck, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, "vocab", "import", deck)
	if !strings.Contains(out, "Imported 2 words") {
		t.Errorf("unexpected import output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "vocabulary.json")); err != nil {
		t.Errorf("imported deck not written: %v", err)
	}

	out = mustRun(t, "vocab", "list")
	if !strings.Contains(out, "soar") || !strings.Contains(out, "glide") || strings.Contains(out, "abundant") {
		t.Errorf("vocab list should show the imported deck:\n%s", out)
	}

	out = mustRun(t, "card")
	if !strings.Contains(out, "soar") {
		t.Errorf("card should come from the imported deck:\n%s", out)
	}
}

func TestVocabImportBadFile(t *testing.T) {
	setupTestCLI(t)

	if _, err := run(t, "", "vocab", "import", filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing deck file")
	}
}

func TestExportBeforeAnySession(t *testing.T) {
	setupTestCLI(t)

	if _, err := run(t, "", "export"); err == nil {
		t.Error("expected error exporting an empty store")
	}
}

func TestExportFormats(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "answer", "yes")

	tests := []struct {
		format string
		want   string
	}{
		{"json", `"tool": "freely"`},
		{"yaml", "tool: freely"},
		{"markdown", "# Freely Learning Report"},
	}
	for _, tt := range tests {
		out := mustRun(t, "export", "--format", tt.format)
		if !strings.Contains(out, tt.want) {
			t.Errorf("%s export missing %q:\n%s", tt.format, tt.want, out)
		}
	}

	if _, err := run(t, "", "export", "-f", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dataDir := setupTestCLI(t)
	mustRun(t, "answer", "yes")
	mustRun(t, "answer", "no")

	backup := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, "export", "-o", backup)

	mustRun(t, "reset", "--force")
	if len(loadSnapshot(t, dataDir).Records) != 0 {
		t.Fatal("reset did not clear records")
	}

	if _, err := run(t, "", "import", backup); err == nil {
		t.Error("import over an existing session should require --force")
	}

	out := mustRun(t, "import", backup, "--force")
	if !strings.Contains(out, "Imported 2 answers") {
		t.Errorf("unexpected import output:\n%s", out)
	}
	if got := len(loadSnapshot(t, dataDir).Records); got != 2 {
		t.Errorf("got %d records after import, want 2", got)
	}
}

func TestImportInvalidFile(t *testing.T) {
	setupTestCLI(t)

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "import", bad); err == nil {
		t.Error("expected error for invalid import file")
	}
}

func TestMigrate(t *testing.T) {
	dataDir := setupTestCLI(t)
	mustRun(t, "answer", "yes")

	if _, err := run(t, "", "migrate"); err == nil {
		t.Error("expected error without --to")
	}
	if _, err := run(t, "", "migrate", "--to", "markdown"); err == nil {
		t.Error("expected error for unknown backend")
	}

	out := mustRun(t, "migrate", "--to", "yaml")
	if !strings.Contains(out, "Migrated 1 answers") {
		t.Errorf("unexpected migrate output:\n%s", out)
	}

	yamlStore, err := storage.NewYAMLStore(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	snap, err := yamlStore.Load()
	if err != nil {
		t.Fatalf("YAML store Load failed: %v", err)
	}
	if len(snap.Records) != 1 {
		t.Errorf("got %d migrated records, want 1", len(snap.Records))
	}

	if _, err := run(t, "", "migrate", "--to", "yaml"); err == nil {
		t.Error("expected error overwriting an existing session without --force")
	}

	mustRun(t, "migrate", "--to", "yaml", "--force", "--switch")
	mustRun(t, "answer", "no")

	snap, err = yamlStore.Load()
	if err != nil {
		t.Fatalf("YAML store Load failed: %v", err)
	}
	if len(snap.Records) != 2 {
		t.Errorf("answers should go to the yaml backend after --switch, got %d records", len(snap.Records))
	}
}

func TestWatch(t *testing.T) {
	dataDir := setupTestCLI(t)

	out := mustRun(t, "watch", "--every", "10ms", "-n", "2")
	if strings.Count(out, "altitude") < 2 {
		t.Errorf("expected two previews, got:\n%s", out)
	}

	// opening the session saves one update; previews add nothing
	snap := loadSnapshot(t, dataDir)
	if len(snap.Records) != 0 {
		t.Errorf("watch recorded %d answers", len(snap.Records))
	}
	if got := len(snap.Metrics.AltitudeHistory); got != 2 {
		t.Errorf("got %d altitude samples after watch, want 2 (initial plus open)", got)
	}

	if _, err := run(t, "", "watch", "--every", "0s"); err == nil {
		t.Error("expected error for non-positive interval")
	}
}
