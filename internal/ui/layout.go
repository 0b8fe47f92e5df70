package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the sidebar collapses
	// to icons only.
	LayoutCompactWidth = 90

	// LayoutWideWidth is the minimum width to show score columns in tables.
	LayoutWideWidth = 120
)

// Sidebar widths.
const (
	sidebarWidth        = 22
	sidebarCompactWidth = 5
)

// Log display limits.
const (
	// LogTailLines is how many lines of the log file the log view keeps.
	LogTailLines = 500
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// ActionTimeout bounds API calls triggered from the keyboard.
	ActionTimeout = 30 * time.Second
)
