package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/andy/journal/internal/domain"
)

// formatDate returns the stored form of an entry date
func formatDate(t time.Time) string {
	return t.Format(domain.TimestampLayout)
}

// formatCreatedAt returns the stored form of created_at
func formatCreatedAt(t time.Time) string {
	return t.Format(domain.CreatedAtLayout)
}

// parseCreatedAt reads created_at. The column is nullable on tables that
// predate it; a missing value yields the zero time.
func parseCreatedAt(s sql.NullString) (time.Time, error) {
	if !s.Valid || s.String == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(domain.CreatedAtLayout, s.String, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(domain.TimestampLayout, s.String, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse created_at %q: %w", s.String, err)
	}
	return t, nil
}
