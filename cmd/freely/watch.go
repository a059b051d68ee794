// ABOUTME: CLI command that periodically previews the bird.
// ABOUTME: Opens the session once, then schedules read-only previews with gocron.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"
)

var (
	watchEvery time.Duration
	watchCount int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the bird drift over time",
	Long: `Print a preview of the bird at a fixed interval.

Opening the session when watch starts counts as an update, so idle hours
since the last run are applied and saved once, as with status. After that,
each preview shows what the bird would look like if you opened freely at
that moment. Previews are not saved.

EXAMPLES:

  freely watch                  # Every minute until Ctrl-C
  freely watch --every 10m      # Every ten minutes
  freely watch -n 3 --every 1s  # Three previews, then exit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchEvery <= 0 {
			return fmt.Errorf("--every must be positive")
		}

		store, err := openSession(cmd.Context())
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		done := make(chan struct{})
		runs := 0

		scheduler := gocron.NewScheduler(time.Local)
		scheduler.SingletonModeAll()
		_, err = scheduler.Every(watchEvery).Do(func() {
			if watchCount > 0 && runs >= watchCount {
				return
			}
			faint.Fprintf(out, "%s ", time.Now().Format("15:04:05"))
			printReading(out, store.Preview())
			runs++
			if watchCount > 0 && runs == watchCount {
				close(done)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to schedule preview: %w", err)
		}

		scheduler.StartAsync()
		defer scheduler.Stop()

		select {
		case <-ctx.Done():
		case <-done:
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchEvery, "every", time.Minute, "interval between previews")
	watchCmd.Flags().IntVarP(&watchCount, "count", "n", 0, "stop after this many previews (0 = until interrupted)")
	rootCmd.AddCommand(watchCmd)
}
