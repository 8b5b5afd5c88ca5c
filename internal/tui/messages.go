package tui

import "github.com/andy/journal/internal/domain"

// SwitchViewMsg requests a view change
type SwitchViewMsg struct {
	View View
}

// targeted messages are delivered to a specific view instead of the visible one
type targeted interface {
	target() View
}

// entriesLoadedMsg carries the result of a list query
type entriesLoadedMsg struct {
	view    View
	entries []*domain.Entry
	err     error
}

func (m entriesLoadedMsg) target() View { return m.view }

// entrySavedMsg reports the outcome of an add from the new entry form
type entrySavedMsg struct {
	entry *domain.Entry
	err   error
}

func (entrySavedMsg) target() View { return ViewNewEntry }

// statsLoadedMsg carries the settings view summary
type statsLoadedMsg struct {
	count int
	err   error
}

func (statsLoadedMsg) target() View { return ViewSettings }

// transferDoneMsg reports an export or import run from settings
type transferDoneMsg struct {
	status string
	err    error
}

func (transferDoneMsg) target() View { return ViewSettings }
