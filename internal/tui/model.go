package tui

import (
	"fmt"
	"strings"

	"github.com/andy/journal/internal/app"
	"github.com/andy/journal/internal/log"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View names one screen of the shell
type View int

const (
	ViewToday View = iota
	ViewEntries
	ViewNewEntry
	ViewSettings

	viewCount
)

// String returns the view name
func (v View) String() string {
	switch v {
	case ViewToday:
		return "Today"
	case ViewEntries:
		return "Entries"
	case ViewNewEntry:
		return "New Entry"
	case ViewSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// ParseView maps a ui.start_view config value to a View. Empty means Today.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return ViewToday, nil
	case "entries":
		return ViewEntries, nil
	case "new":
		return ViewNewEntry, nil
	case "settings":
		return ViewSettings, nil
	default:
		return ViewToday, fmt.Errorf("unknown view %q", s)
	}
}

// Refresher is implemented by views that reload their data when shown
type Refresher interface {
	Refresh() tea.Cmd
}

// InputCapturer is implemented by views that capture keyboard input (e.g. text forms).
// When active, global navigation keys (T, E, N, ",", Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// Model is the root Bubble Tea model
type Model struct {
	app     *app.App
	log     *log.Logger
	current View
	width   int
	height  int

	views [viewCount]tea.Model
}

// New creates a new root model showing start
func New(a *app.App, start View) Model {
	m := Model{
		app:     a,
		log:     a.Log.WithComponent(log.ComponentTUI),
		current: start,
	}
	m.views[ViewToday] = NewTodayModel(a)
	m.views[ViewEntries] = NewEntriesModel(a)
	m.views[ViewNewEntry] = NewNewEntryModel(a)
	m.views[ViewSettings] = NewSettingsModel(a)
	return m
}

// Current returns the visible view
func (m Model) Current() View {
	return m.current
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.refresh(m.current)
}

func (m Model) refresh(v View) tea.Cmd {
	if r, ok := m.views[v].(Refresher); ok {
		return r.Refresh()
	}
	return nil
}

// switchTo makes v the visible view and refreshes it
func (m *Model) switchTo(v View) tea.Cmd {
	if v < 0 || v >= viewCount {
		return nil
	}
	m.current = v
	return m.refresh(v)
}

// capturingInput returns true if the current view is capturing text input
func (m Model) capturingInput() bool {
	if ic, ok := m.views[m.current].(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to views
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// Skip global navigation when a view is capturing text input
		if !m.capturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit
			case key.Matches(msg, DefaultKeyMap.Today):
				return m, m.switchTo(ViewToday)
			case key.Matches(msg, DefaultKeyMap.Entries):
				return m, m.switchTo(ViewEntries)
			case key.Matches(msg, DefaultKeyMap.NewEntry):
				return m, m.switchTo(ViewNewEntry)
			case key.Matches(msg, DefaultKeyMap.Settings):
				return m, m.switchTo(ViewSettings)
			}
		}

	case SwitchViewMsg:
		return m, m.switchTo(msg.View)

	case targeted:
		// Results of background loads go to the view that asked, even if
		// the user has moved on since.
		v := msg.target()
		var cmd tea.Cmd
		m.views[v], cmd = m.views[v].Update(msg)
		return m, cmd
	}

	// Route message to current view
	var cmd tea.Cmd
	m.views[m.current], cmd = m.views[m.current].Update(msg)
	return m, cmd
}

// View implements tea.Model - renders header + current view + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("journal - %s", m.current))
	footer := footerStyle.Render("[T]oday  [E]ntries  [N]ew entry  [,] Settings  [Q]uit")
	content := m.views[m.current].View()

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n%s", header, divider, content, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI on the configured start view
func Run(a *app.App) error {
	start, err := ParseView(a.Config.UI.StartView)
	if err != nil {
		return err
	}
	m := New(a, start)
	m.log.Info("tui started", "view", start.String())

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
