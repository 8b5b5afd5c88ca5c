package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andy/journal/internal/app"
	"github.com/andy/journal/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// new entry form fields
const (
	newEntryFieldContent = iota
	newEntryFieldDate
	newEntryFieldCount
)

// NewEntryModel is the form for writing an entry
type NewEntryModel struct {
	app *app.App

	content    textarea.Model
	date       textinput.Model
	fieldFocus int
	focused    bool
	saving     bool

	err error
}

// NewNewEntryModel creates the new entry view
func NewNewEntryModel(a *app.App) tea.Model {
	content := textarea.New()
	content.Placeholder = "What have you learned today?"
	content.ShowLineNumbers = false
	content.CharLimit = 0
	content.SetWidth(60)
	content.SetHeight(8)

	date := textinput.New()
	date.Placeholder = domain.DateLayout
	date.CharLimit = len(domain.DateLayout)
	date.Width = 15

	return &NewEntryModel{
		app:     a,
		content: content,
		date:    date,
	}
}

// IsCapturingInput returns true while one of the fields has focus
func (m *NewEntryModel) IsCapturingInput() bool {
	return m.focused
}

func (m *NewEntryModel) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh clears the form and focuses the content field
func (m *NewEntryModel) Refresh() tea.Cmd {
	m.content.Reset()
	m.date.SetValue(m.app.Clock.Now().Format(domain.DateLayout))
	m.err = nil
	m.saving = false
	return m.focusField(newEntryFieldContent)
}

func (m *NewEntryModel) focusField(field int) tea.Cmd {
	m.fieldFocus = field
	m.focused = true
	m.content.Blur()
	m.date.Blur()
	if field == newEntryFieldDate {
		return m.date.Focus()
	}
	return m.content.Focus()
}

func (m *NewEntryModel) blur() {
	m.focused = false
	m.content.Blur()
	m.date.Blur()
}

// validate checks the form before anything reaches the store
func (m *NewEntryModel) validate() (string, string, error) {
	content := strings.TrimSpace(m.content.Value())
	if content == "" {
		return "", "", fmt.Errorf("content cannot be empty")
	}
	date := strings.TrimSpace(m.date.Value())
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return "", "", fmt.Errorf("date must be YYYY-MM-DD")
	}
	return content, date, nil
}

func (m *NewEntryModel) save() tea.Cmd {
	content, date, err := m.validate()
	if err != nil {
		m.err = err
		return nil
	}

	m.err = nil
	m.saving = true
	return func() tea.Msg {
		entry, err := m.app.Journal.Add(context.Background(), content, date)
		return entrySavedMsg{entry: entry, err: err}
	}
}

func (m *NewEntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entrySavedMsg:
		m.saving = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.blur()
		return m, func() tea.Msg { return SwitchViewMsg{View: ViewToday} }

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}

		if !m.focused {
			switch {
			case key.Matches(msg, DefaultKeyMap.Confirm):
				return m, m.focusField(m.fieldFocus)
			case key.Matches(msg, DefaultKeyMap.Save):
				return m, m.save()
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			m.blur()
			return m, nil
		case key.Matches(msg, DefaultKeyMap.Save):
			return m, m.save()
		case key.Matches(msg, DefaultKeyMap.NextField), key.Matches(msg, DefaultKeyMap.PrevField):
			return m, m.focusField((m.fieldFocus + 1) % newEntryFieldCount)
		case m.fieldFocus == newEntryFieldDate && key.Matches(msg, DefaultKeyMap.Confirm):
			return m, m.save()
		}
	}

	// Update the focused field
	var cmd tea.Cmd
	if m.fieldFocus == newEntryFieldDate {
		m.date, cmd = m.date.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

func (m *NewEntryModel) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("New Entry") + "\n\n")

	labels := []string{"Content:", "Date:"}
	views := []string{m.content.View(), m.date.View()}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if m.focused && i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s.WriteString(fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), views[i]))
	}

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}
	if m.saving {
		s.WriteString(subtitleStyle.Render("  Saving...") + "\n\n")
	}

	if m.focused {
		s.WriteString(helpStyle.Render("  tab: switch field  ctrl+s: save  esc: leave form"))
	} else {
		s.WriteString(helpStyle.Render("  enter: edit  ctrl+s: save  t/e/,: switch view"))
	}

	return s.String()
}
