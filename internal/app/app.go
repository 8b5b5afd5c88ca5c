package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/andy/journal/internal/clock"
	"github.com/andy/journal/internal/config"
	"github.com/andy/journal/internal/crypto"
	"github.com/andy/journal/internal/db"
	"github.com/andy/journal/internal/log"
	"github.com/andy/journal/internal/repository"
	"github.com/andy/journal/internal/service"
)

// App is the dependency injection container for all application components.
// It is built once at startup and handed to the CLI and TUI.
type App struct {
	Config     *config.Config
	ConfigPath string
	DB         *db.DB
	Log        *log.Logger
	Clock      clock.Clock
	Keys       crypto.Keyring

	EntryRepo repository.EntryRepository
	Journal   service.JournalService
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config
// 2. Getting the encryption key from the keyring (encrypted databases only)
// 3. Opening the database
// 4. Initializing the entries table
// 5. Creating the repository and service
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a, err := NewWithConfig(ctx, cfg, crypto.NewKeyring())
	if err != nil {
		return nil, err
	}
	a.ConfigPath = config.DefaultConfigPath()
	return a, nil
}

// NewWithConfig creates an App with a provided config (useful for testing).
// keys is only consulted when cfg.Database.Encrypt is set.
func NewWithConfig(ctx context.Context, cfg *config.Config, keys crypto.Keyring) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger := log.Discard()
	if cfg.Log.Path != "" {
		l, err := log.OpenFile(cfg.Log.Path, cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to open log: %w", err)
		}
		logger = l
	}

	var key string
	if cfg.Database.Encrypt {
		k, err := resolveKey(keys)
		if err != nil {
			logger.Close()
			return nil, err
		}
		key = k
	}

	clk := clock.System()

	database, err := db.Open(db.Options{
		Path:        cfg.Database.Path,
		Key:         key,
		BusyTimeout: cfg.Database.BusyTimeout,
		MaxConns:    cfg.Database.MaxConns,
		Clock:       clk,
		Logger:      logger,
	})
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.Initialize(ctx); err != nil {
		database.Close()
		logger.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	entryRepo := repository.NewEntryRepo(database, logger)
	journal := service.NewJournalService(entryRepo, clk, logger)

	logger.WithComponent(log.ComponentApp).Info("journal started", "db", cfg.Database.Path, "encrypted", database.Encrypted())

	return &App{
		Config:    cfg,
		DB:        database,
		Log:       logger,
		Clock:     clk,
		Keys:      keys,
		EntryRepo: entryRepo,
		Journal:   journal,
	}, nil
}

// Close cleanly shuts down the application. Safe to call more than once.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	err := a.DB.Close()
	if lerr := a.Log.Close(); err == nil {
		err = lerr
	}
	a.Log = nil
	return err
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	path := a.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return a.Config.Save(path)
}

func resolveKey(keys crypto.Keyring) (string, error) {
	password, err := keys.GetKey()
	if err == nil {
		return password, nil
	}
	if !errors.Is(err, crypto.ErrKeyNotFound) {
		return "", fmt.Errorf("failed to read encryption key: %w", err)
	}

	if !keys.IsAvailable() {
		return "", fmt.Errorf("no encryption key found and no system keyring is available; set %s", crypto.EnvKey)
	}

	// No key exists, prompt user to set one
	fmt.Println("Setting up database encryption for the first time...")
	password, err = promptForPassword()
	if err != nil {
		return "", fmt.Errorf("failed to set password: %w", err)
	}

	if err := keys.SetKey(password); err != nil {
		return "", fmt.Errorf("failed to store encryption key: %w", err)
	}
	return password, nil
}

// promptForPassword prompts user for a new database password (first run)
func promptForPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no encryption key found and stdin is not a terminal; set %s", crypto.EnvKey)
	}

	fmt.Println()
	fmt.Println("Your journal will be encrypted with a password.")
	fmt.Println("This password will be stored securely in your system keyring.")
	fmt.Println()
	fmt.Print("Enter a password for database encryption: ")

	password, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("✓ Database encryption configured successfully")
	fmt.Println()

	return string(password), nil
}
