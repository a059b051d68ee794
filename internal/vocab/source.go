// ABOUTME: Vocabulary sources: the embedded default deck and user deck files.
// ABOUTME: FileSource reads JSON, YAML, CSV, or XLSX decks by extension.
package vocab

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/freely/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed deck.json
var defaultDeck []byte

// Source provides the vocabulary for a session.
type Source interface {
	Load(ctx context.Context) ([]models.Word, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]models.Word, error)

// Load calls f.
func (f SourceFunc) Load(ctx context.Context) ([]models.Word, error) {
	return f(ctx)
}

// Static returns a source that always yields a copy of words.
func Static(words []models.Word) Source {
	return SourceFunc(func(ctx context.Context) ([]models.Word, error) {
		return append([]models.Word(nil), words...), nil
	})
}

// Embedded returns the built-in deck.
func Embedded() Source {
	return SourceFunc(func(ctx context.Context) ([]models.Word, error) {
		words, err := decodeJSON(defaultDeck)
		if err != nil {
			return nil, fmt.Errorf("decode embedded deck: %w", err)
		}
		return Normalize(words), nil
	})
}

// FileSource loads a deck from a file on disk.
type FileSource struct {
	Path string
}

// Load reads and normalizes the deck at s.Path.
func (s FileSource) Load(ctx context.Context) ([]models.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		words []models.Word
		err   error
	)
	switch ext := strings.ToLower(filepath.Ext(s.Path)); ext {
	case ".json", ".yaml", ".yml":
		var raw []byte
		raw, err = os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("read deck: %w", err)
		}
		if ext == ".json" {
			words, err = decodeJSON(raw)
		} else {
			err = yaml.Unmarshal(raw, &words)
		}
	case ".csv":
		words, err = readCSV(s.Path)
	case ".xlsx":
		words, err = readXLSX(s.Path)
	default:
		return nil, fmt.Errorf("unsupported deck format %q (use .json, .yaml, .csv, or .xlsx)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", s.Path, err)
	}
	return Normalize(words), nil
}

func decodeJSON(raw []byte) ([]models.Word, error) {
	var words []models.Word
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, err
	}
	return words, nil
}

// Normalize trims every field, drops entries without a word, and gives
// id-less words sequential ids after the largest id present.
func Normalize(words []models.Word) []models.Word {
	out := make([]models.Word, 0, len(words))
	maxID := 0
	for _, w := range words {
		w.Word = strings.TrimSpace(w.Word)
		w.Meaning = strings.TrimSpace(w.Meaning)
		w.Pronunciation = strings.TrimSpace(w.Pronunciation)
		w.Example = strings.TrimSpace(w.Example)
		if w.Word == "" {
			continue
		}
		maxID = max(maxID, w.ID)
		out = append(out, w)
	}
	for i := range out {
		if out[i].ID <= 0 {
			maxID++
			out[i].ID = maxID
		}
	}
	return out
}
