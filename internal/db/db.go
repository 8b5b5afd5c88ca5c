package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andy/journal/internal/clock"
	"github.com/andy/journal/internal/log"

	_ "github.com/mutecomm/go-sqlcipher/v4"
	_ "modernc.org/sqlite"
)

const (
	// DriverSQLCipher is registered by go-sqlcipher and used for encrypted files
	DriverSQLCipher = "sqlite3"
	// DriverSQLite is the pure Go driver used for plain files
	DriverSQLite = "sqlite"

	defaultBusyTimeout = 5 * time.Second
)

// Options controls how the database file is opened
type Options struct {
	Path string
	// Key enables SQLCipher encryption when non-empty
	Key         string
	BusyTimeout time.Duration
	MaxConns    int
	Clock       clock.Clock
	Logger      *log.Logger
}

type DB struct {
	*sql.DB
	path   string
	driver string
	clock  clock.Clock
	log    *log.Logger
}

// Open opens (creating if needed) the journal database.
//
// Every pooled connection runs in WAL mode with a busy timeout, so readers
// and a writer on different connections do not block each other.
func Open(opts Options) (*DB, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if opts.BusyTimeout <= 0 {
		opts.BusyTimeout = defaultBusyTimeout
	}
	if opts.MaxConns <= 0 {
		opts.MaxConns = 1
	}
	if opts.Clock == nil {
		opts.Clock = clock.System()
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(opts.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	driver, dsn := buildDSN(opts)

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(opts.MaxConns)
	sqlDB.SetMaxIdleConns(opts.MaxConns)

	// Ping to verify connection (and the key, for encrypted files)
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		DB:     sqlDB,
		path:   opts.Path,
		driver: driver,
		clock:  opts.Clock,
		log:    opts.Logger.WithComponent(log.ComponentStorage),
	}
	db.log.Debug("database opened", "path", opts.Path, "driver", driver, "max_conns", opts.MaxConns)

	return db, nil
}

func buildDSN(opts Options) (string, string) {
	ms := opts.BusyTimeout.Milliseconds()

	if opts.Key != "" {
		q := url.Values{}
		q.Set("_pragma_key", opts.Key)
		q.Set("_busy_timeout", fmt.Sprint(ms))
		q.Set("_journal_mode", "WAL")
		q.Set("_foreign_keys", "on")
		return DriverSQLCipher, fileURI(opts.Path) + "?" + q.Encode()
	}

	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", ms))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	return DriverSQLite, fileURI(opts.Path) + "?" + q.Encode()
}

// fileURI percent-escapes each path segment so ?, # and % in directory or
// file names reach SQLite as part of the path.
func fileURI(path string) string {
	segments := strings.Split(filepath.ToSlash(path), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return "file:" + strings.Join(segments, "/")
}

// WithTx acquires a dedicated connection, runs fn inside a transaction on it
// and releases the connection. The transaction commits when fn returns nil
// and rolls back otherwise; fn's error is returned unchanged.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Path returns the database file location
func (db *DB) Path() string {
	return db.path
}

// Encrypted reports whether the file is opened through SQLCipher
func (db *DB) Encrypted() bool {
	return db.driver == DriverSQLCipher
}

// Now returns the store's notion of the current time
func (db *DB) Now() time.Time {
	return db.clock.Now()
}

// Close closes the connection pool. Safe on a nil or already closed DB.
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}
