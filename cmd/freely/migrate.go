// ABOUTME: CLI command for migrating a session between storage backends.
// ABOUTME: Copies the snapshot and can switch the configured backend.
package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/freely/internal/config"
	"github.com/harperreed/freely/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateForce  bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy your session to another storage backend",
	Long: `Copy the stored session from one backend to another.

BACKENDS:

  sqlite   freely.db in the data directory (default)
  yaml     session.yaml in the data directory
  badger   badger/ in the data directory

The source defaults to the configured backend. The destination is not
overwritten if it already holds a session unless --force is given.
Pass --switch to make the destination the configured backend afterwards.

EXAMPLES:

  freely migrate --to yaml
  freely migrate --from yaml --to badger --switch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := migrateFrom
		if from == "" {
			from = cfg.GetBackend()
		}
		if migrateTo == "" {
			return fmt.Errorf("--to is required (%s)", strings.Join(config.Backends, ", "))
		}
		for _, b := range []string{from, migrateTo} {
			if !slices.Contains(config.Backends, b) {
				return fmt.Errorf("unknown backend: %q", b)
			}
		}
		if from == migrateTo {
			return fmt.Errorf("source and destination are both %s", from)
		}

		dataDir := cfg.GetDataDir()
		src, err := config.OpenBackend(from, dataDir)
		if err != nil {
			return fmt.Errorf("open %s: %w", from, err)
		}
		defer src.Close()

		dst, err := config.OpenBackend(migrateTo, dataDir)
		if err != nil {
			return fmt.Errorf("open %s: %w", migrateTo, err)
		}
		defer dst.Close()

		if !migrateForce {
			_, err := dst.Load()
			if err == nil || !errors.Is(err, storage.ErrNoSnapshot) {
				return fmt.Errorf("%s already holds a session; use --force to overwrite it", migrateTo)
			}
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Migrated %d answers and %d altitude samples from %s to %s\n",
			summary.Records, summary.AltitudeSamples, from, migrateTo)

		if migrateSwitch {
			cfg.Backend = migrateTo
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(out, "Backend set to %s in %s\n", migrateTo, config.GetConfigPath())
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (default: configured backend)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite a session already in the destination")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "use the destination backend from now on")
	rootCmd.AddCommand(migrateCmd)
}
