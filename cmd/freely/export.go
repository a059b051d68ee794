// ABOUTME: CLI commands for exporting and importing session data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/freely/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportSince  string
	importForce  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session data",
	Long: `Export your answers, progress and bird metrics.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Learning report (for sharing)

OPTIONS:

  --format, -f   Output format (default json)
  --output, -o   Write to file instead of stdout
  --since        Only include answers after this date (markdown only)

EXAMPLES:

  freely export                         # Export as JSON
  freely export -o backup.json          # Save to file
  freely export -f yaml                 # Export as YAML
  freely export -f markdown --since 2025-01-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error

		switch exportFormat {
		case "json":
			data, err = storage.ExportJSON(repo)
		case "yaml":
			data, err = storage.ExportYAML(repo)
		case "markdown", "md":
			var since *time.Time
			if exportSince != "" {
				t, perr := parseTime(exportSince)
				if perr != nil {
					return perr
				}
				since = &t
			}
			var md string
			md, err = storage.ExportMarkdown(repo, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", exportFormat)
		}

		if errors.Is(err, storage.ErrNoSnapshot) {
			return fmt.Errorf("nothing to export yet; answer a card first")
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", exportOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import session data from a JSON or YAML export",
	Long: `Restore a session from a file written by 'freely export'.

The imported session replaces the stored one. If a session already exists
you must pass --force.

EXAMPLES:

  freely import backup.json
  freely import backup.yaml --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		data, err := storage.ParseExport(raw)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		if !importForce {
			if _, err := repo.Load(); err == nil {
				return fmt.Errorf("a session already exists; use --force to replace it")
			}
		}

		if err := storage.ImportData(repo, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported %d answers from %s\n", len(data.Session.Records), filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json, yaml, markdown")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include answers since date (markdown only)")
	importCmd.Flags().BoolVar(&importForce, "force", false, "replace an existing session")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
