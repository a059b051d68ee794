// ABOUTME: CLI command showing bird metrics and learning progress.
// ABOUTME: Distance is recomputed from the clock on every call.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/freely/internal/bird"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show the bird and your progress",
	Long: `Show the bird's distance, altitude, freedom and animation along with
answer counts, streaks and accuracy.

Opening the session counts as an update, so idle hours since the last
command are applied to the altitude.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSession(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		r := store.MetricsSnapshot()
		m := store.Metrics()
		faint := color.New(color.Faint)
		bold := color.New(color.Bold)

		bold.Fprintf(out, "%s  %s\n", animationIcon(r.Animation), r.Animation)
		fmt.Fprintf(out, "  %s %s %s\n", padRight("distance", 9), bird.FormatDistance(r.Distance),
			faint.Sprintf("(since %s)", m.InstallDate.Local().Format("2006-01-02 15:04")))
		fmt.Fprintf(out, "  %s %s %s\n", padRight("altitude", 9),
			altitudeColor(r.Altitude).Sprintf("%.1f", r.Altitude), faint.Sprint(bird.AltitudeBand(r.Altitude)))
		fmt.Fprintf(out, "  %s %.2f %s\n", padRight("freedom", 9), r.Freedom, faint.Sprint(bird.FreedomLevel(r.Freedom)))
		fmt.Fprintln(out)
		printProgress(out, store.ProgressSnapshot())
		warnPersist(out, store.LastPersistError())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
