// ABOUTME: Root Cobra command for freely CLI.
// ABOUTME: Loads config, logging and storage via PersistentPre/PostRunE.
package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harperreed/freely/internal/config"
	"github.com/harperreed/freely/internal/logging"
	"github.com/harperreed/freely/internal/session"
	"github.com/harperreed/freely/internal/storage"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	cfg    *config.Config
	repo   storage.Repository
	logger *slog.Logger
)

// commands that manage their own storage or need none
var skipStorage = map[string]bool{
	"help":          true,
	"completion":    true,
	"install-skill": true,
	"migrate":       true,
}

var rootCmd = &cobra.Command{
	Use:     "freely",
	Short:   "Vocabulary flashcards with a bird that flies on your progress",
	Version: version,
	Long: `Freely is a vocabulary flashcard tool. Every answer you give lifts a
small bird; idle hours bring it back down.

THE BIRD:

  Distance   Whole hours since you started (or last reset)
  Altitude   0-100. +5 per answer, -1 per idle hour. Starts at 50
  Freedom    How much the altitude has varied over the last 10 readings
  Animation  fly, glide (steady altitude), or hop (grounded)

QUICK START:

  $ freely card              # Show the current word
  $ freely answer yes        # You knew it
  $ freely answer no         # You didn't
  $ freely study             # Interactive session (y/n/q)
  $ freely status            # Bird metrics and progress

VOCABULARY:

  A built-in deck is used until you import your own:

  $ freely vocab import words.xlsx   # json, yaml, csv, or xlsx
  $ freely vocab list

MCP INTEGRATION:

  Run 'freely mcp' to start the Model Context Protocol server so an AI
  assistant can quiz you:

  {
    "mcpServers": {
      "freely": { "command": "freely", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Config lives at ~/.config/freely/config.json. Sessions are stored in
  ~/.local/share/freely using SQLite (default), a YAML file, or Badger.
  Environment variables FREELY_BACKEND, FREELY_DATA_DIR, FREELY_VOCABULARY
  and FREELY_LOG_LEVEL override the config file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger = logging.Setup(cfg.GetLogLevel())

		if skipStorage[cmd.Name()] {
			return nil
		}

		if repo != nil {
			_ = repo.Close()
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		logger.Debug("storage opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

// openSession builds the session over the open repository and loads it.
func openSession(ctx context.Context) (*session.Store, error) {
	store := session.New(repo, cfg.VocabularySource(), session.WithLogger(logger))
	if err := store.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return store, nil
}

func init() {
	rootCmd.SetVersionTemplate("freely {{.Version}}\n")
}
