// ABOUTME: CLI command for listing recent answers.
// ABOUTME: Supports limiting results and filtering by time.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historySince string
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log"},
	Short:   "List recent answers",
	Long: `List recent answers, newest first.

OUTPUT FORMAT:

  Each line shows: TIMESTAMP  WORD  RESULT

EXAMPLES:

  freely history                     # Last 20 answers
  freely history -n 50               # Last 50 answers
  freely log --since 2025-01-01      # Everything answered after a date`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var since time.Time
		if historySince != "" {
			t, err := parseTime(historySince)
			if err != nil {
				return err
			}
			since = t
		}

		store, err := openSession(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		records := store.Recent(historyLimit, since)
		if len(records) == 0 {
			fmt.Fprintln(out, "No answers recorded.")
			return nil
		}

		words := make(map[int]string)
		for _, w := range store.Vocabulary() {
			words[w.ID] = w.Word
		}

		faint := color.New(color.Faint)
		for _, r := range records {
			word, ok := words[r.WordID]
			if !ok {
				word = fmt.Sprintf("#%d", r.WordID)
			}
			result := color.RedString("missed")
			if r.Known {
				result = color.GreenString("known")
			}
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprint(r.Timestamp.Local().Format("2006-01-02 15:04")),
				padRight(word, 16),
				result)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max number of results")
	historyCmd.Flags().StringVar(&historySince, "since", "", "only answers after this time (YYYY-MM-DD [HH:MM])")
	rootCmd.AddCommand(historyCmd)
}
