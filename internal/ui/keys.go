package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit          key.Binding
	Help          key.Binding
	CycleTheme    key.Binding
	ToggleSidebar key.Binding
	Tab           key.Binding
	ShiftTab      key.Binding
	Escape        key.Binding
	SkipToast     key.Binding
	Refresh       key.Binding

	// View switching
	ViewDashboard  key.Binding
	ViewLeads      key.Binding
	ViewReplies    key.Binding
	ViewKeywords   key.Binding
	ViewSubreddits key.Binding
	ViewSettings   key.Binding
	ViewLogs       key.Binding

	// Actions
	Scan          key.Binding
	GenerateReply key.Binding
	Add           key.Binding
	Remove        key.Binding
	PrevPeriod    key.Binding
	NextPeriod    key.Binding
	SignIn        key.Binding
	SignOut       key.Binding
	Feedback      key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Modal input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Toggle sidebar"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / back to dashboard"),
		),
		SkipToast: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Dismiss notification"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),

		ViewDashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Dashboard"),
		),
		ViewLeads: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Leads"),
		),
		ViewReplies: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Replies"),
		),
		ViewKeywords: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Keywords"),
		),
		ViewSubreddits: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Subreddits"),
		),
		ViewSettings: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "Settings"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Logs"),
		),

		Scan: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Scan for leads"),
		),
		GenerateReply: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "Generate reply"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add keywords/subreddits"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Remove selected"),
		),
		PrevPeriod: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Shorter period"),
		),
		NextPeriod: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Longer period"),
		),
		SignIn: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Sign in with Google"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "Sign out"),
		),
		Feedback: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Send feedback"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}
