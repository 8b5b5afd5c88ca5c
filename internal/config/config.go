package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the YAML file
const (
	EnvDBPath   = "JOURNAL_DB_PATH"
	EnvLogLevel = "JOURNAL_LOG_LEVEL"
)

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Log file settings
	Log LogConfig `yaml:"log"`

	// Terminal UI settings
	UI UIConfig `yaml:"ui"`
}

type DatabaseConfig struct {
	Path        string        `yaml:"path"`         // Path to SQLite database
	Encrypt     bool          `yaml:"encrypt"`      // Use SQLCipher with a key from the keyring
	BusyTimeout time.Duration `yaml:"busy_timeout"` // Lock wait before a busy error
	MaxConns    int           `yaml:"max_conns"`    // Upper bound on pooled connections
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"` // debug, info, warn, error
}

type UIConfig struct {
	StartView string `yaml:"start_view"` // today, entries, new, settings
}

// DefaultConfigPath returns ~/.config/journal/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "journal", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "journal", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	base := filepath.Join(homeDir, ".config", "journal")

	return &Config{
		Database: DatabaseConfig{
			Path:        filepath.Join(base, "journal.db"),
			Encrypt:     false,
			BusyTimeout: 5 * time.Second,
			MaxConns:    4,
		},
		Log: LogConfig{
			Path:  filepath.Join(base, "journal.log"),
			Level: "info",
		},
		UI: UIConfig{
			StartView: "today",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist.
// Environment overrides (optionally from a .env file in the working directory)
// are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// A missing .env is the normal case
	_ = godotenv.Load()
	cfg.applyEnv()

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the database and log directories
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(filepath.Dir(c.Database.Path), 0755); err != nil {
		return err
	}
	if c.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(c.Log.Path), 0755); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks values that would otherwise fail late, at open time
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.BusyTimeout < 0 {
		return fmt.Errorf("database.busy_timeout must not be negative")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database.max_conns must be at least 1, got %d", c.Database.MaxConns)
	}
	switch c.UI.StartView {
	case "", "today", "entries", "new", "settings":
	default:
		return fmt.Errorf("ui.start_view %q is not one of today, entries, new, settings", c.UI.StartView)
	}
	return nil
}
