package repository

import (
	"context"
	"time"

	"github.com/andy/journal/internal/domain"
)

// EntryRepository manages journal entry persistence. Entries are append-only.
type EntryRepository interface {
	Append(ctx context.Context, content string, date time.Time) (*domain.Entry, error)
	AppendAll(ctx context.Context, entries []*domain.Entry) error // all or nothing
	ListAll(ctx context.Context) ([]*domain.Entry, error)         // date DESC, created_at DESC
	ListByDate(ctx context.Context, day time.Time) ([]*domain.Entry, error)
	Count(ctx context.Context) (int, error)
}
