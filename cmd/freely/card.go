// ABOUTME: CLI commands for showing and answering the current flashcard.
// ABOUTME: Answers advance the deck and recompute the bird.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/freely/internal/session"
	"github.com/spf13/cobra"
)

var answerWordID int

var cardCmd = &cobra.Command{
	Use:     "card",
	Aliases: []string{"c"},
	Short:   "Show the current flashcard",
	Long: `Show the word you should answer next.

The deck advances one card after every answer and wraps around at the end.

EXAMPLES:

  freely card
  freely c`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSession(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		word, ok := store.CurrentWord()
		if !ok {
			fmt.Fprintln(out, "No words available.")
			return nil
		}
		printWord(out, word)
		return nil
	},
}

var answerCmd = &cobra.Command{
	Use:     "answer <yes|no>",
	Aliases: []string{"a"},
	Short:   "Answer the current flashcard",
	Long: `Record whether you knew the current word.

Accepts yes/y/known or no/n/unknown. Each answer adds 5 altitude and moves
to the next card. Use --word to record an answer for a specific word id.

EXAMPLES:

  freely answer yes
  freely a n
  freely answer yes --word 12`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"yes", "no"},
	RunE: func(cmd *cobra.Command, args []string) error {
		known, err := parseAnswer(args[0])
		if err != nil {
			return err
		}

		store, err := openSession(cmd.Context())
		if err != nil {
			return err
		}

		wordID := answerWordID
		if wordID == 0 {
			word, ok := store.CurrentWord()
			if !ok {
				return session.ErrNoVocabulary
			}
			wordID = word.ID
		}

		if err := store.Answer(wordID, known); err != nil {
			if errors.Is(err, session.ErrNoVocabulary) {
				return fmt.Errorf("no words available; import a deck with 'freely vocab import'")
			}
			return err
		}

		out := cmd.OutOrStdout()
		if known {
			color.New(color.FgGreen).Fprintln(out, "✓ known")
		} else {
			color.New(color.FgRed).Fprintln(out, "✗ missed")
		}
		printReading(out, store.MetricsSnapshot())
		warnPersist(out, store.LastPersistError())

		if next, ok := store.CurrentWord(); ok {
			fmt.Fprintln(out)
			printWord(out, next)
		}
		return nil
	},
}

func init() {
	answerCmd.Flags().IntVarP(&answerWordID, "word", "w", 0, "word id to answer (default: current card)")
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(answerCmd)
}
