package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/andy/journal/internal/db"
	"github.com/andy/journal/internal/domain"
	"github.com/andy/journal/internal/testutil"
)

var start = time.Date(2026, 10, 17, 8, 0, 0, 0, time.Local)

func day(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.Local)
}

// createTestRepo opens a fresh, initialized store in a temp dir.
func createTestRepo(t *testing.T) (*EntryRepo, *db.DB) {
	t.Helper()
	database, err := db.Open(db.Options{
		Path:     filepath.Join(t.TempDir(), "journal.db"),
		MaxConns: 4,
		Clock:    testutil.NewStepClock(start, time.Second),
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Initialize(context.Background()))
	return NewEntryRepo(database, nil), database
}

func TestAppend_ThenListAll(t *testing.T) {
	repo, _ := createTestRepo(t)
	ctx := context.Background()

	date := day(2026, 10, 15, 14, 3, 11)
	entry, err := repo.Append(ctx, "  learned about WAL  ", date)
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, "learned about WAL", entry.Content)
	assert.Equal(t, start, entry.CreatedAt)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entry.ID, all[0].ID)
	assert.Equal(t, "learned about WAL", all[0].Content)
	assert.Equal(t, "2026-10-15", all[0].Day())
	assert.True(t, date.Equal(all[0].Date))
	assert.True(t, start.Equal(all[0].CreatedAt))
}

func TestAppend_RejectsEmptyInput(t *testing.T) {
	repo, _ := createTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		content string
		date    time.Time
	}{
		{"empty content", "", start},
		{"blank content", "  \n\t", start},
		{"zero date", "something", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Append(ctx, tt.content, tt.date)
			assert.ErrorIs(t, err, domain.ErrInvalidEntry)

			n, err := repo.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, n)
		})
	}
}

func TestListAll_EmptyIsNotNil(t *testing.T) {
	repo, _ := createTestRepo(t)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	today, err := repo.ListByDate(context.Background(), start)
	require.NoError(t, err)
	assert.NotNil(t, today)
	assert.Empty(t, today)
}

func TestListAll_Ordering(t *testing.T) {
	repo, _ := createTestRepo(t)
	ctx := context.Background()

	// Insertion order deliberately differs from date order
	inputs := []struct {
		content string
		date    time.Time
	}{
		{"b1", day(2026, 10, 14, 9, 0, 0)},
		{"c", day(2026, 10, 16, 9, 0, 0)},
		{"a", day(2026, 10, 13, 9, 0, 0)},
		{"b2", day(2026, 10, 14, 9, 0, 0)},
		{"b3", day(2026, 10, 14, 9, 0, 0)},
	}
	for _, in := range inputs {
		_, err := repo.Append(ctx, in.content, in.date)
		require.NoError(t, err)
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)

	var got []string
	for _, e := range all {
		got = append(got, e.Content)
	}
	assert.Equal(t, []string{"c", "b3", "b2", "b1", "a"}, got)

	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if prev.Date.Equal(cur.Date) {
			assert.True(t, prev.CreatedAt.After(cur.CreatedAt), "tie broken by created_at at %d", i)
		} else {
			assert.True(t, prev.Date.After(cur.Date), "date order at %d", i)
		}
	}
}

func TestListByDate_CalendarDayWindow(t *testing.T) {
	repo, database := createTestRepo(t)
	ctx := context.Background()

	target := day(2026, 10, 15, 0, 0, 0)
	in := []struct {
		content string
		date    time.Time
	}{
		{"eve", day(2026, 10, 14, 23, 59, 59)},
		{"midnight", day(2026, 10, 15, 0, 0, 0)},
		{"noon", day(2026, 10, 15, 12, 0, 0)},
		{"last second", day(2026, 10, 15, 23, 59, 59)},
		{"next day", day(2026, 10, 16, 0, 0, 0)},
	}
	for _, e := range in {
		_, err := repo.Append(ctx, e.content, e.date)
		require.NoError(t, err)
	}

	// A row from the first release, date without time of day
	_, err := database.Exec(
		"INSERT INTO entries (content, date, created_at) VALUES (?, ?, ?)",
		"legacy", "2026-10-15", "2026-10-15 07:00:00.000000",
	)
	require.NoError(t, err)

	got, err := repo.ListByDate(ctx, target.Add(15*time.Hour))
	require.NoError(t, err)

	var contents []string
	for _, e := range got {
		contents = append(contents, e.Content)
		assert.Equal(t, "2026-10-15", e.Day())
	}
	// created_at DESC: matching appends were stamped 08:00:01..08:00:03, legacy row 07:00
	assert.Equal(t, []string{"last second", "noon", "midnight", "legacy"}, contents)
}

func TestAppendAll_IsAtomic(t *testing.T) {
	repo, _ := createTestRepo(t)
	ctx := context.Background()

	batch := []*domain.Entry{
		domain.NewEntry("one", start),
		domain.NewEntry("", start),
		domain.NewEntry("three", start),
	}
	err := repo.AppendAll(ctx, batch)
	assert.ErrorIs(t, err, domain.ErrInvalidEntry)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	batch[1].Content = "two"
	require.NoError(t, repo.AppendAll(ctx, batch))

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	for _, e := range batch {
		assert.NotZero(t, e.ID)
		assert.False(t, e.CreatedAt.IsZero())
	}
}

func TestConcurrentAppendAndRead(t *testing.T) {
	repo, _ := createTestRepo(t)
	ctx := context.Background()

	const writers, perWriter = 4, 10

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < writers; w++ {
		g.Go(func() error {
			for i := 0; i < perWriter; i++ {
				if _, err := repo.Append(gctx, fmt.Sprintf("w%d-%d", w, i), start); err != nil {
					return err
				}
			}
			return nil
		})
	}
	for r := 0; r < 2; r++ {
		g.Go(func() error {
			for i := 0; i < perWriter; i++ {
				if _, err := repo.ListAll(gctx); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter, n)
}

func TestListAll_KeepsUnreadableLegacyDates(t *testing.T) {
	database, err := db.Open(db.Options{
		Path:  filepath.Join(t.TempDir(), "journal.db"),
		Clock: testutil.NewStepClock(start, time.Second),
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	ctx := context.Background()

	// The first release stored whatever the user typed
	_, err = database.Exec("CREATE TABLE entries (content TEXT, date TEXT)")
	require.NoError(t, err)
	_, err = database.Exec("INSERT INTO entries (content, date) VALUES ('good', '2024-01-02'), ('typo', '02/01/2024'), ('no date', NULL)")
	require.NoError(t, err)
	require.NoError(t, database.Initialize(ctx))

	repo := NewEntryRepo(database, nil)
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	byContent := make(map[string]*domain.Entry, len(all))
	for _, e := range all {
		byContent[e.Content] = e
	}

	require.Contains(t, byContent, "good")
	assert.Equal(t, "2024-01-02", byContent["good"].Day())

	require.Contains(t, byContent, "typo")
	typo := byContent["typo"]
	assert.True(t, typo.Date.IsZero())
	assert.Equal(t, "02/01/2024", typo.RawDate)
	assert.Equal(t, "02/01/2024", typo.FormatDate(domain.TimestampLayout))

	require.Contains(t, byContent, "no date")
	assert.True(t, byContent["no date"].Date.IsZero())
	assert.Empty(t, byContent["no date"].Day())

	// Stored text order: the ISO date outranks 02/01/2024 and NULL
	assert.Equal(t, "good", all[0].Content)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
