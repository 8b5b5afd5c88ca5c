package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/andy/journal/internal/app"
	"github.com/andy/journal/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeExport
	settingsModeImport
)

// SettingsModel shows where the journal lives and moves entries in and out of files
type SettingsModel struct {
	app       *app.App
	mode      settingsMode
	pathInput textinput.Model
	count     int
	busy      bool
	err       error
	statusMsg string
}

// NewSettingsModel creates a new settings view
func NewSettingsModel(a *app.App) tea.Model {
	in := textinput.New()
	in.Placeholder = "/path/to/journal.json"
	in.CharLimit = 256
	in.Width = 60

	return &SettingsModel{
		app:       a,
		mode:      settingsModeView,
		pathInput: in,
	}
}

// IsCapturingInput returns true when the path prompt is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode != settingsModeView
}

func (m *SettingsModel) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads the entry count
func (m *SettingsModel) Refresh() tea.Cmd {
	return func() tea.Msg {
		n, err := m.app.Journal.Count(context.Background())
		return statsLoadedMsg{count: n, err: err}
	}
}

func (m *SettingsModel) openPrompt(mode settingsMode, value string) tea.Cmd {
	m.mode = mode
	m.err = nil
	m.statusMsg = ""
	m.pathInput.SetValue(value)
	m.pathInput.CursorEnd()
	return m.pathInput.Focus()
}

func (m *SettingsModel) closePrompt() {
	m.mode = settingsModeView
	m.pathInput.Blur()
}

// defaultExportPath suggests a dated file next to the database
func (m *SettingsModel) defaultExportPath() string {
	name := "journal-" + m.app.Clock.Now().Format("20060102") + ".json"
	return filepath.Join(filepath.Dir(m.app.DB.Path()), name)
}

func (m *SettingsModel) runExport(path string) tea.Cmd {
	return func() tea.Msg {
		format, err := service.ParseFormat(path)
		if err != nil {
			return transferDoneMsg{err: err}
		}

		f, err := os.Create(path)
		if err != nil {
			return transferDoneMsg{err: err}
		}
		n, err := m.app.Journal.Export(context.Background(), f, format)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
			return transferDoneMsg{err: fmt.Errorf("export failed: %w", err)}
		}
		return transferDoneMsg{status: fmt.Sprintf("Exported %d entries to %s", n, path)}
	}
}

func (m *SettingsModel) runImport(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return transferDoneMsg{err: err}
		}
		defer f.Close()

		n, err := m.app.Journal.Import(context.Background(), f)
		if err != nil {
			return transferDoneMsg{err: fmt.Errorf("import failed: %w", err)}
		}
		return transferDoneMsg{status: fmt.Sprintf("Imported %d entries from %s", n, path)}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.count = msg.count
		return m, nil

	case transferDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = msg.status
		return m, m.Refresh()
	}

	if m.mode != settingsModeView {
		return m.updatePrompt(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.busy {
		switch {
		case key.Matches(msg, DefaultKeyMap.Export):
			return m, m.openPrompt(settingsModeExport, m.defaultExportPath())
		case key.Matches(msg, DefaultKeyMap.Import):
			return m, m.openPrompt(settingsModeImport, "")
		}
	}

	return m, nil
}

func (m *SettingsModel) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			m.closePrompt()
			m.err = nil
			return m, nil

		case key.Matches(msg, DefaultKeyMap.Confirm):
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				m.err = fmt.Errorf("path is required")
				return m, nil
			}
			mode := m.mode
			m.closePrompt()
			m.busy = true
			if mode == settingsModeExport {
				return m, m.runExport(path)
			}
			return m, m.runImport(path)
		}
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Settings") + "\n\n")

	if m.statusMsg != "" {
		s.WriteString(statusStyle.Render("  "+m.statusMsg) + "\n\n")
	}

	labelStyle := lipgloss.NewStyle().Bold(true).Width(14)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	encryption := "off"
	if m.app.DB.Encrypted() {
		encryption = "on (SQLCipher)"
	}
	configPath := m.app.ConfigPath
	if configPath == "" {
		configPath = "(defaults)"
	}

	s.WriteString(subtitleStyle.Render("  Storage") + "\n\n")
	s.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Database:"), valueStyle.Render(m.app.DB.Path())))
	s.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Encryption:"), valueStyle.Render(encryption)))
	s.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Entries:"), valueStyle.Render(strconv.Itoa(m.count))))
	s.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Config:"), valueStyle.Render(configPath)))
	if m.app.Config.Log.Path != "" {
		s.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Log:"), valueStyle.Render(m.app.Config.Log.Path)))
	}

	switch m.mode {
	case settingsModeExport:
		s.WriteString("\n" + lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render("> Export to (.json or .xlsx):") + "\n")
		s.WriteString("  " + m.pathInput.View() + "\n")
	case settingsModeImport:
		s.WriteString("\n" + lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render("> Import from JSON file:") + "\n")
		s.WriteString("  " + m.pathInput.View() + "\n")
	}

	if m.busy {
		s.WriteString("\n" + subtitleStyle.Render("  Working...") + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n")
	}

	if m.mode == settingsModeView {
		s.WriteString("\n" + helpStyle.Render("  x: export  i: import"))
	} else {
		s.WriteString("\n" + helpStyle.Render("  enter: run  esc: cancel"))
	}

	return s.String()
}
