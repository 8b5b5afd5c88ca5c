package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/journal/internal/app"
	"github.com/andy/journal/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EntriesModel displays a scrollable list of every entry
type EntriesModel struct {
	app        *app.App
	entries    []*domain.Entry
	cursor     int
	offset     int
	maxVisible int
	loading    bool
	err        error
}

// NewEntriesModel creates a new entries view model
func NewEntriesModel(a *app.App) tea.Model {
	return &EntriesModel{
		app:        a,
		maxVisible: 12,
		loading:    true,
	}
}

func (m *EntriesModel) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads the full entry list
func (m *EntriesModel) Refresh() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		entries, err := m.app.Journal.All(context.Background())
		return entriesLoadedMsg{view: ViewEntries, entries: entries, err: err}
	}
}

// Selected returns the entry under the cursor, or nil
func (m *EntriesModel) Selected() *domain.Entry {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return nil
	}
	return m.entries[m.cursor]
}

func (m *EntriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
			if m.cursor >= len(m.entries) {
				m.cursor = len(m.entries) - 1
			}
			if m.cursor < 0 {
				m.cursor = 0
			}
			m.offset = clampWindow(m.cursor, m.offset, m.maxVisible)
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading || len(m.entries) == 0 {
			return m, nil
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Top):
			m.cursor = 0
		case key.Matches(msg, DefaultKeyMap.End):
			m.cursor = len(m.entries) - 1
		}
		m.offset = clampWindow(m.cursor, m.offset, m.maxVisible)
	}

	return m, nil
}

func (m *EntriesModel) View() string {
	if m.loading {
		return "Loading entries..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("All Entries") + "\n")

	if len(m.entries) == 0 {
		s.WriteString("\n" + subtitleStyle.Render("  No entries yet. Press 'n' to add one."))
		return s.String()
	}

	s.WriteString(subtitleStyle.Render(fmt.Sprintf("  %d entries", len(m.entries))) + "\n\n")

	// Column header
	s.WriteString(subtitleStyle.Render(fmt.Sprintf("  %-16s  %s", "Date", "Content")) + "\n")

	end := m.offset + m.maxVisible
	if end > len(m.entries) {
		end = len(m.entries)
	}

	for i := m.offset; i < end; i++ {
		s.WriteString(m.renderEntry(m.entries[i], i == m.cursor) + "\n")
	}

	// Scroll indicators
	if m.offset > 0 {
		s.WriteString(subtitleStyle.Render("  ... more above") + "\n")
	}
	if end < len(m.entries) {
		s.WriteString(subtitleStyle.Render("  ... more below") + "\n")
	}

	if e := m.Selected(); e != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("  "+e.FormatDate(stampLayout)) + "\n")
		s.WriteString(boxStyle.Render(e.Content) + "\n")
	}

	s.WriteString("\n" + helpStyle.Render("  j/k: navigate  g/G: top/bottom  n: new entry"))

	return s.String()
}

func (m *EntriesModel) renderEntry(e *domain.Entry, selected bool) string {
	line := fmt.Sprintf("%-16s  %s", e.FormatDate("2006-01-02 15:04"), truncateStr(oneLine(e.Content), 50))
	if selected {
		return "  " + selectedStyle.Render(line)
	}
	return "  " + line
}
