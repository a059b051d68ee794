// ABOUTME: Interactive study loop over stdin.
// ABOUTME: Shows a card, reads y/n/q, records the answer and shows the bird.
package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Study cards interactively",
	Long: `Work through the deck one card at a time.

For each card type y (knew it), n (didn't), or q to stop. The bird is shown
after every answer and a summary when you finish.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSession(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		reader := bufio.NewScanner(cmd.InOrStdin())
		answered := 0

		for {
			word, ok := store.CurrentWord()
			if !ok {
				fmt.Fprintln(out, "No words available.")
				return nil
			}

			fmt.Fprintln(out)
			printWord(out, word)
			faint.Fprint(out, "Knew it? [y/n/q] ")

			if !reader.Scan() {
				break
			}
			input := strings.TrimSpace(reader.Text())
			if strings.EqualFold(input, "q") || strings.EqualFold(input, "quit") {
				break
			}

			known, err := parseAnswer(input)
			if err != nil {
				color.New(color.FgYellow).Fprintln(out, err)
				continue
			}
			if err := store.Answer(word.ID, known); err != nil {
				return err
			}
			answered++
			printReading(out, store.MetricsSnapshot())
			warnPersist(out, store.LastPersistError())
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "Answered %d cards this session.\n", answered)
		printProgress(out, store.ProgressSnapshot())
		return reader.Err()
	},
}

func init() {
	rootCmd.AddCommand(studyCmd)
}
