package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/journal/internal/app"
	"github.com/andy/journal/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// TodayModel shows the entries written today, newest first
type TodayModel struct {
	app *app.App

	entries    []*domain.Entry
	offset     int
	maxVisible int

	loading bool
	err     error
}

// NewTodayModel creates the today view
func NewTodayModel(a *app.App) tea.Model {
	return &TodayModel{
		app:        a,
		maxVisible: 6,
		loading:    true,
	}
}

func (m *TodayModel) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads today's entries
func (m *TodayModel) Refresh() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		entries, err := m.app.Journal.Today(context.Background())
		return entriesLoadedMsg{view: ViewToday, entries: entries, err: err}
	}
}

func (m *TodayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
			m.offset = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.offset+m.maxVisible < len(m.entries) {
				m.offset++
			}
		}
	}

	return m, nil
}

func (m *TodayModel) View() string {
	if m.loading {
		return "Loading today..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(formatDay(m.app.Clock.Now())) + "\n")

	if len(m.entries) == 0 {
		s.WriteString("\n" + subtitleStyle.Render("  Nothing written today. Press 'n' to add an entry."))
		return s.String()
	}

	noun := "entries"
	if len(m.entries) == 1 {
		noun = "entry"
	}
	s.WriteString(subtitleStyle.Render(fmt.Sprintf("  %d %s today", len(m.entries), noun)) + "\n\n")

	end := m.offset + m.maxVisible
	if end > len(m.entries) {
		end = len(m.entries)
	}

	if m.offset > 0 {
		s.WriteString(subtitleStyle.Render("  ... more above") + "\n")
	}
	for _, e := range m.entries[m.offset:end] {
		s.WriteString("  " + entryTimeStyle.Render(e.FormatDate(timeLayout)) + "\n")
		s.WriteString(boxStyle.Render(e.Content) + "\n")
	}
	if end < len(m.entries) {
		s.WriteString(subtitleStyle.Render("  ... more below") + "\n")
	}

	s.WriteString("\n" + helpStyle.Render("  j/k: scroll  n: new entry"))
	return s.String()
}
