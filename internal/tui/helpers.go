package tui

import (
	"strings"
	"time"
)

const (
	timeLayout  = "15:04"
	stampLayout = "Mon Jan 2 2006 15:04"
)

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// oneLine flattens multi-line content for list rows
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// formatDay renders a calendar day heading like "Saturday, October 17 2026"
func formatDay(t time.Time) string {
	return t.Format("Monday, January 2 2006")
}

// clampWindow keeps cursor inside [offset, offset+visible)
func clampWindow(cursor, offset, visible int) int {
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visible {
		return cursor - visible + 1
	}
	return offset
}
