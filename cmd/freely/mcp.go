// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/freely/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP lets an AI assistant quiz you from your deck, record your answers and
report how the bird is doing. The server communicates via stdin/stdout.

CONFIGURATION:

  Add this to your assistant's MCP config:

  {
    "mcpServers": {
      "freely": {
        "command": "freely",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  current_word     Show the next flashcard
  answer_word      Record known/missed and advance
  get_metrics      Bird distance, altitude, freedom, animation
  get_progress     Answer counts, streaks, accuracy
  list_history     Recent answers
  reset_progress   Erase progress (requires confirm)

AVAILABLE RESOURCES:

  freely://metrics    Bird metrics
  freely://progress   Learning progress
  freely://history    Last 20 answers`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		store, err := openSession(ctx)
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(store, version)
		if err != nil {
			return err
		}
		logger.Info("mcp server starting", "backend", cfg.GetBackend())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
