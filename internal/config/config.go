// ABOUTME: freely configuration management with backend selection.
// ABOUTME: Reads the JSON config file, .env and FREELY_* overrides through viper.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/harperreed/freely/internal/storage"
	"github.com/harperreed/freely/internal/vocab"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backends lists the storage backends OpenStorage understands.
var Backends = []string{"sqlite", "yaml", "badger"}

// Config stores freely configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "yaml" or "badger".
	Backend string `json:"backend,omitempty" mapstructure:"backend" validate:"omitempty,oneof=sqlite yaml badger"`

	// DataDir is the root directory for data storage.
	// SQLite puts freely.db here, YAML puts session.yaml here, Badger uses badger/.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/freely.
	DataDir string `json:"data_dir,omitempty" mapstructure:"data_dir"`

	// Vocabulary is an optional deck file used instead of the imported or built-in deck.
	Vocabulary string `json:"vocabulary,omitempty" mapstructure:"vocabulary"`

	// LogLevel is one of debug, info, warn or error. Defaults to warn.
	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

var configKeys = []string{"backend", "data_dir", "vocabulary", "log_level"}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to "warn".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "warn"
	}
	return c.LogLevel
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return OpenBackend(c.GetBackend(), c.GetDataDir())
}

// OpenBackend opens the named backend rooted at dataDir.
func OpenBackend(backend, dataDir string) (storage.Repository, error) {
	switch backend {
	case "sqlite":
		return storage.Open(storage.DBPath(dataDir))
	case "yaml":
		return storage.NewYAMLStore(dataDir)
	case "badger":
		return storage.OpenBadger(filepath.Join(dataDir, "badger"))
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// VocabularySource picks the deck: the configured file, then a deck
// imported into the data directory, then the built-in deck.
func (c *Config) VocabularySource() vocab.Source {
	return vocab.Resolve(ExpandPath(c.Vocabulary), c.GetDataDir())
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "freely", "config.json")
}

// Load reads config from disk. A .env file in the working directory is
// applied first and FREELY_* environment variables override the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")

	path := GetConfigPath()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("FREELY")
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
