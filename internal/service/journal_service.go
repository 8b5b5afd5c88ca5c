package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/andy/journal/internal/clock"
	"github.com/andy/journal/internal/domain"
	"github.com/andy/journal/internal/log"
	"github.com/andy/journal/internal/repository"
)

// JournalService is the input contract in front of the entry store: it turns
// what the user typed into stored entries and moves entries in and out of files.
type JournalService interface {
	// Add stores content under a YYYY-MM-DD date, stamped with the current time of day
	Add(ctx context.Context, content, date string) (*domain.Entry, error)
	Today(ctx context.Context) ([]*domain.Entry, error)
	All(ctx context.Context) ([]*domain.Entry, error)
	OnDay(ctx context.Context, date string) ([]*domain.Entry, error)
	Count(ctx context.Context) (int, error)

	// Export writes every entry and returns how many were written
	Export(ctx context.Context, w io.Writer, format Format) (int, error)
	// Import appends every record of a JSON array, or none of them
	Import(ctx context.Context, r io.Reader) (int, error)
}

type journalService struct {
	entries repository.EntryRepository
	clock   clock.Clock
	log     *log.Logger
}

// NewJournalService creates a new journal service
func NewJournalService(entries repository.EntryRepository, clk clock.Clock, logger *log.Logger) JournalService {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &journalService{
		entries: entries,
		clock:   clk,
		log:     logger.WithComponent(log.ComponentJournal),
	}
}

func (s *journalService) Add(ctx context.Context, content, date string) (*domain.Entry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidEntry)
	}

	day, err := domain.ParseDay(date, time.Local)
	if err != nil {
		return nil, err
	}

	entry, err := s.entries.Append(ctx, content, domain.AtTimeOfDay(day, s.clock.Now()))
	if err != nil {
		s.log.ErrorContext(ctx, "append failed", "error", err)
		return nil, err
	}

	s.log.InfoContext(ctx, "entry added", "id", entry.ID, "day", entry.Day())
	return entry, nil
}

func (s *journalService) Today(ctx context.Context) ([]*domain.Entry, error) {
	return s.entries.ListByDate(ctx, s.clock.Now())
}

func (s *journalService) All(ctx context.Context) ([]*domain.Entry, error) {
	return s.entries.ListAll(ctx)
}

func (s *journalService) OnDay(ctx context.Context, date string) ([]*domain.Entry, error) {
	day, err := domain.ParseDay(date, time.Local)
	if err != nil {
		return nil, err
	}
	return s.entries.ListByDate(ctx, day)
}

func (s *journalService) Count(ctx context.Context) (int, error) {
	return s.entries.Count(ctx)
}
