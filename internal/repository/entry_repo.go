package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andy/journal/internal/db"
	"github.com/andy/journal/internal/domain"
	"github.com/andy/journal/internal/log"
)

// rowid is selected instead of id: the first release created the table
// without an id column, and id aliases rowid on every later layout.
const selectEntries = `
		SELECT rowid, content, date, created_at
		FROM entries
	`

// EntryRepo is a SQLite implementation of EntryRepository
type EntryRepo struct {
	db  *db.DB
	log *log.Logger
}

// NewEntryRepo creates a new EntryRepo
func NewEntryRepo(database *db.DB, logger *log.Logger) *EntryRepo {
	if logger == nil {
		logger = log.Discard()
	}
	return &EntryRepo{db: database, log: logger.WithComponent(log.ComponentStorage)}
}

// Append validates and inserts one entry, stamping created_at with the
// current time. Invalid input is rejected before any storage access.
func (r *EntryRepo) Append(ctx context.Context, content string, date time.Time) (*domain.Entry, error) {
	entry := domain.NewEntry(content, date)
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return r.insert(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	r.log.DebugContext(ctx, "entry appended", "id", entry.ID, "date", formatDate(entry.Date))
	return entry, nil
}

// AppendAll inserts every entry in one transaction. Nothing is written if
// any entry is invalid or any insert fails.
func (r *EntryRepo) AppendAll(ctx context.Context, entries []*domain.Entry) error {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, e := range entries {
			if err := r.insert(ctx, tx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.InfoContext(ctx, "entries appended", "count", len(entries))
	return nil
}

func (r *EntryRepo) insert(ctx context.Context, tx *sql.Tx, entry *domain.Entry) error {
	entry.CreatedAt = r.db.Now()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO entries (content, date, created_at) VALUES (?, ?, ?)",
		entry.Content,
		formatDate(entry.Date),
		formatCreatedAt(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get entry ID: %w", err)
	}

	entry.ID = id
	return nil
}

// ListAll returns every entry, newest date first
func (r *EntryRepo) ListAll(ctx context.Context) ([]*domain.Entry, error) {
	query := selectEntries + `
		ORDER BY date DESC, created_at DESC, rowid DESC
	`
	return r.list(ctx, query)
}

// ListByDate returns the entries whose date falls on the calendar day of
// day, whatever their time of day, most recently created first.
func (r *EntryRepo) ListByDate(ctx context.Context, day time.Time) ([]*domain.Entry, error) {
	start, end := domain.DayBounds(day)
	query := selectEntries + `
		WHERE date >= ? AND date <= ?
		ORDER BY created_at DESC, rowid DESC
	`
	return r.list(ctx, query, start, end)
}

// Count returns the number of stored entries
func (r *EntryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

func (r *EntryRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Entry, error) {
	entries := []*domain.Entry{}

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			entry, err := r.scanEntry(rows)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// scanEntry reads one row. An unreadable date is logged and kept as raw
// text so one bad legacy row does not hide the rest of the journal.
func (r *EntryRepo) scanEntry(rows *sql.Rows) (*domain.Entry, error) {
	entry := &domain.Entry{}
	var content, date, createdAt sql.NullString

	if err := rows.Scan(&entry.ID, &content, &date, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to scan entry: %w", err)
	}

	entry.Content = content.String
	entry.RawDate = date.String

	var err error
	if entry.Date, err = domain.ParseStoredDate(date.String, time.Local); err != nil {
		r.log.Warn("unreadable entry date", "id", entry.ID, "date", date.String, "null", !date.Valid)
		entry.Date = time.Time{}
	}
	if entry.CreatedAt, err = parseCreatedAt(createdAt); err != nil {
		return nil, fmt.Errorf("entry %d: %w", entry.ID, err)
	}

	return entry, nil
}
