// ABOUTME: CLI command for erasing progress.
// ABOUTME: Clears answers and restarts the bird after confirmation.
package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all progress",
	Long: `Erase every recorded answer and restart the bird.

Distance restarts from zero, altitude returns to 50 and the deck goes back
to the first card. The vocabulary itself is kept.

Asks for confirmation unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if !resetForce {
			fmt.Fprint(out, "Erase all progress? [y/N] ")
			reader := bufio.NewReader(cmd.InOrStdin())
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Reset canceled.")
				return nil
			}
		}

		store, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		store.ResetProgress()
		if err := store.LastPersistError(); err != nil {
			return fmt.Errorf("reset not saved: %w", err)
		}

		color.New(color.FgGreen).Fprintln(out, "✓ Progress reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
