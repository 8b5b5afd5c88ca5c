package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/andy/journal/internal/domain"
)

// Format selects the export encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"

	xlsxSheet = "Journal"
)

var (
	ErrImportFormat  = errors.New("malformed import file")
	ErrUnknownFormat = errors.New("unknown export format")
)

// ParseFormat accepts a format name or a file name with a known extension
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "json" || strings.HasSuffix(s, ".json"):
		return FormatJSON, nil
	case s == "xlsx" || strings.HasSuffix(s, ".xlsx"):
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Record is one entry in an export file
type Record struct {
	Content   string `json:"content"`
	Date      string `json:"date"`
	CreatedAt string `json:"created_at,omitempty"`
}

// importRecord uses pointers so a missing field can be told from an empty one
type importRecord struct {
	Content   *string `json:"content"`
	Date      *string `json:"date"`
	CreatedAt *string `json:"created_at"`
}

func toRecord(e *domain.Entry) Record {
	r := Record{
		Content: e.Content,
		Date:    e.FormatDate(domain.TimestampLayout),
	}
	if !e.CreatedAt.IsZero() {
		r.CreatedAt = e.CreatedAt.Format(domain.TimestampLayout)
	}
	return r
}

func (s *journalService) Export(ctx context.Context, w io.Writer, format Format) (int, error) {
	entries, err := s.entries.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	switch format {
	case FormatJSON:
		err = writeJSON(w, entries)
	case FormatXLSX:
		err = writeXLSX(w, entries)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "entries exported", "count", len(entries), "format", string(format))
	return len(entries), nil
}

func writeJSON(w io.Writer, entries []*domain.Entry) error {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, toRecord(e))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to write JSON export: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, entries []*domain.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if err := fillSheet(f, xlsxSheet, entries); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write XLSX export: %w", err)
	}
	return nil
}

var xlsxColumns = []struct {
	name   string
	header string
	width  float64
}{
	{"A", "Date", 20},
	{"B", "Content", 80},
	{"C", "Created At", 20},
}

// fillSheet writes the header row, one row per entry and the column widths.
func fillSheet(f *excelize.File, sheet string, entries []*domain.Entry) error {
	for _, col := range xlsxColumns {
		if err := f.SetCellValue(sheet, col.name+"1", col.header); err != nil {
			return fmt.Errorf("failed to write cell %s1: %w", col.name, err)
		}
		if err := f.SetColWidth(sheet, col.name, col.name, col.width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", col.name, err)
		}
	}

	for i, e := range entries {
		r := toRecord(e)
		values := [...]string{r.Date, r.Content, r.CreatedAt}
		for j, col := range xlsxColumns {
			cell := fmt.Sprintf("%s%d", col.name, i+2)
			if err := f.SetCellValue(sheet, cell, values[j]); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

func (s *journalService) Import(ctx context.Context, r io.Reader) (int, error) {
	var records []importRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}
	if records == nil {
		return 0, fmt.Errorf("%w: expected an array of entries", ErrImportFormat)
	}
	if _, err := dec.Token(); err != io.EOF {
		return 0, fmt.Errorf("%w: trailing data after the entry array", ErrImportFormat)
	}

	now := s.clock.Now()
	entries := make([]*domain.Entry, 0, len(records))
	for i, rec := range records {
		entry, err := fromRecord(rec, now)
		if err != nil {
			return 0, fmt.Errorf("%w: record %d: %v", ErrImportFormat, i, err)
		}
		entries = append(entries, entry)
	}

	if err := s.entries.AppendAll(ctx, entries); err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "entries imported", "count", len(entries))
	return len(entries), nil
}

// fromRecord accepts the stored timestamp form written by Export, or a bare
// calendar date which gets the current time of day like Add.
func fromRecord(rec importRecord, now time.Time) (*domain.Entry, error) {
	if rec.Content == nil || strings.TrimSpace(*rec.Content) == "" {
		return nil, errors.New("missing content")
	}
	if rec.Date == nil || strings.TrimSpace(*rec.Date) == "" {
		return nil, errors.New("missing date")
	}

	raw := strings.TrimSpace(*rec.Date)
	if t, err := time.ParseInLocation(domain.TimestampLayout, raw, time.Local); err == nil {
		return domain.NewEntry(*rec.Content, t), nil
	}
	day, err := domain.ParseDay(raw, time.Local)
	if err != nil {
		return nil, err
	}
	return domain.NewEntry(*rec.Content, domain.AtTimeOfDay(day, now)), nil
}
