package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-date format users type in.
	DateLayout = "2006-01-02"
	// TimestampLayout is how an entry's date is stored.
	TimestampLayout = "2006-01-02 15:04:05"
	// CreatedAtLayout is fixed-width so lexical order matches time order.
	CreatedAtLayout = "2006-01-02 15:04:05.000000"
)

var (
	ErrInvalidEntry = errors.New("invalid entry")
	ErrInvalidDate  = errors.New("invalid date")
)

// Entry is one journal record. Entries are never modified after insert.
type Entry struct {
	ID        int64
	Content   string
	Date      time.Time
	CreatedAt time.Time

	// RawDate is the date column as stored. Rows from the first release were
	// never validated, so Date stays zero when RawDate is not a date.
	RawDate string
}

// NewEntry creates an entry that has not been persisted yet
func NewEntry(content string, date time.Time) *Entry {
	return &Entry{
		Content: strings.TrimSpace(content),
		Date:    date,
	}
}

// Validate returns an error if the entry cannot be stored
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidEntry)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	}
	return nil
}

// Day returns the calendar day of the entry as YYYY-MM-DD
func (e *Entry) Day() string {
	return e.FormatDate(DateLayout)
}

// FormatDate renders Date with layout, or the stored text when it did not parse
func (e *Entry) FormatDate(layout string) string {
	if e.Date.IsZero() {
		return e.RawDate
	}
	return e.Date.Format(layout)
}

// ParseDay parses a user supplied calendar date (YYYY-MM-DD) in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidEntry)
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (use YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return t, nil
}

// AtTimeOfDay combines the calendar day of day with the clock time of now.
func AtTimeOfDay(day, now time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, day.Location())
}

// ParseStoredDate reads a date column. Rows written before dates carried a
// time of day hold a bare YYYY-MM-DD.
func ParseStoredDate(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(TimestampLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized stored date %q", ErrInvalidDate, s)
}

// DayBounds returns the inclusive stored-text window for a calendar day.
// The lower bound is the bare date so legacy date-only rows sort inside it.
func DayBounds(day time.Time) (string, string) {
	d := day.Format(DateLayout)
	return d, d + " 23:59:59"
}
