package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Validate(t *testing.T) {
	now := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, NewEntry("wrote tests", now).Validate())
	assert.ErrorIs(t, NewEntry("", now).Validate(), ErrInvalidEntry)
	assert.ErrorIs(t, NewEntry("   ", now).Validate(), ErrInvalidEntry)
	assert.ErrorIs(t, NewEntry("ok", time.Time{}).Validate(), ErrInvalidEntry)
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay(" 2026-02-28 ", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDay("", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidEntry)

	for _, bad := range []string{"2026-02-30", "28/02/2026", "2026-2-28", "2026-02-28 10:00:00", "tomorrow"} {
		_, err := ParseDay(bad, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestAtTimeOfDay(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 10, 17, 14, 3, 11, 999, time.UTC)

	got := AtTimeOfDay(day, now)
	assert.Equal(t, time.Date(2026, 3, 1, 14, 3, 11, 0, time.UTC), got)
}

func TestParseStoredDate(t *testing.T) {
	full, err := ParseStoredDate("2026-10-17 14:03:11", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 17, 14, 3, 11, 0, time.UTC), full)

	bare, err := ParseStoredDate("2024-01-02", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bare)

	_, err = ParseStoredDate("January 2", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDayBounds(t *testing.T) {
	lo, hi := DayBounds(time.Date(2026, 10, 17, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-10-17", lo)
	assert.Equal(t, "2026-10-17 23:59:59", hi)

	// every stored form of that day sorts inside the window
	for _, s := range []string{"2026-10-17", "2026-10-17 00:00:00", "2026-10-17 23:59:59"} {
		assert.True(t, s >= lo && s <= hi, s)
	}
	for _, s := range []string{"2026-10-16 23:59:59", "2026-10-18", "2026-10-18 00:00:00"} {
		assert.False(t, s >= lo && s <= hi, s)
	}
}
