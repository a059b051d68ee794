// ABOUTME: CLI commands for listing and importing vocabulary decks.
// ABOUTME: Imports JSON, YAML, CSV, or XLSX into the data directory.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/freely/internal/vocab"
	"github.com/spf13/cobra"
)

var vocabCmd = &cobra.Command{
	Use:     "vocab",
	Aliases: []string{"v"},
	Short:   "Manage the vocabulary deck",
	Long: `List or replace the vocabulary deck.

Decks are looked up in this order:
  1. the "vocabulary" file named in config (or FREELY_VOCABULARY)
  2. a deck imported with 'freely vocab import'
  3. the built-in deck`,
}

var vocabListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every word in the deck",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSession(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		words := store.Vocabulary()
		if len(words) == 0 {
			fmt.Fprintln(out, "No words available.")
			return nil
		}

		faint := color.New(color.Faint)
		cursor := store.Cursor()
		for i, w := range words {
			marker := " "
			if i == cursor {
				marker = color.CyanString(">")
			}
			fmt.Fprintf(out, "%s %s %s %s\n",
				marker,
				faint.Sprintf("%4d", w.ID),
				padRight(w.Word, 16),
				w.Meaning)
		}
		return nil
	},
}

var vocabImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a deck file",
	Long: `Import a deck and use it instead of the built-in one.

FORMATS:

  .json         [{"id": 1, "word": "...", "meaning": "...", ...}]
  .yaml, .yml   list of the same fields
  .csv, .xlsx   columns: id, word, meaning, pronunciation, example
                (first row is a header; blank ids are numbered for you)

Answers already recorded keep their word ids.

EXAMPLES:

  freely vocab import toefl.csv
  freely vocab import words.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst := vocab.DeckPath(cfg.GetDataDir())
		n, err := vocab.Import(cmd.Context(), vocab.FileSource{Path: args[0]}, dst)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported %d words to %s\n", n, dst)
		if cfg.Vocabulary != "" {
			color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(),
				"note: config names %s as the deck, which takes precedence\n", cfg.Vocabulary)
		}
		return nil
	},
}

func init() {
	vocabCmd.AddCommand(vocabListCmd)
	vocabCmd.AddCommand(vocabImportCmd)
	rootCmd.AddCommand(vocabCmd)
}
