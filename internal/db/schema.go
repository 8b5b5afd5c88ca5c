package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/andy/journal/internal/domain"
)

const createEntriesTable = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    content TEXT NOT NULL,
    date TEXT NOT NULL,
    created_at TEXT
)`

const createEntriesIndex = `
CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date, created_at)`

// Initialize makes sure the entries table exists and carries created_at.
// Tables written by older versions lack the column; it is added and existing
// rows are backfilled with the current time. Safe to call on every start.
func (db *DB) Initialize(ctx context.Context) error {
	return db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, createEntriesTable); err != nil {
			if !isAlreadyExists(err) {
				return fmt.Errorf("failed to create entries table: %w", err)
			}
			db.log.Warn("entries table already exists", "error", err)
		}

		has, err := hasColumn(ctx, tx, "entries", "created_at")
		if err != nil {
			return err
		}
		if !has {
			if _, err := tx.ExecContext(ctx, "ALTER TABLE entries ADD COLUMN created_at TEXT"); err != nil {
				return fmt.Errorf("failed to add created_at column: %w", err)
			}
			res, err := tx.ExecContext(ctx,
				"UPDATE entries SET created_at = ? WHERE created_at IS NULL",
				db.Now().Format(domain.CreatedAtLayout),
			)
			if err != nil {
				return fmt.Errorf("failed to backfill created_at: %w", err)
			}
			n, _ := res.RowsAffected()
			db.log.Info("added created_at column", "backfilled", n)
		}

		if _, err := tx.ExecContext(ctx, createEntriesIndex); err != nil {
			return fmt.Errorf("failed to create entries index: %w", err)
		}
		return nil
	})
}

func hasColumn(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("failed to scan %s column info: %w", table, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func isAlreadyExists(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "already exists")
}
