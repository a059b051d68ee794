// ABOUTME: Imports a deck into the data directory as normalized JSON.
// ABOUTME: The imported deck replaces the embedded default on next start.
package vocab

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DeckFile is the name of the imported deck inside the data directory.
const DeckFile = "vocabulary.json"

// DeckPath returns where Import writes the deck for dataDir.
func DeckPath(dataDir string) string {
	return filepath.Join(dataDir, DeckFile)
}

// Import loads src and writes it to dst as a JSON deck.
// It returns the number of words written.
func Import(ctx context.Context, src Source, dst string) (int, error) {
	words, err := src.Load(ctx)
	if err != nil {
		return 0, err
	}
	if len(words) == 0 {
		return 0, fmt.Errorf("deck contains no words")
	}

	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal deck: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return 0, fmt.Errorf("create deck directory: %w", err)
	}
	if err := os.WriteFile(dst, data, 0600); err != nil {
		return 0, fmt.Errorf("write deck: %w", err)
	}
	return len(words), nil
}

// Resolve picks the deck for a session: an explicit path first, then an
// imported deck in dataDir, then the embedded default.
func Resolve(path, dataDir string) Source {
	if path != "" {
		return FileSource{Path: path}
	}
	if dataDir != "" {
		if _, err := os.Stat(DeckPath(dataDir)); err == nil {
			return FileSource{Path: DeckPath(dataDir)}
		}
	}
	return Embedded()
}
