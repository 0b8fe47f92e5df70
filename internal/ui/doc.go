// Package ui implements the hurricane terminal dashboard with Bubble Tea.
//
// # Layout
//
//	┌───────────────────────────────────────────────────────┐
//	│ hurricane  http://api…  period 7d  ⣾ Loading          │ header
//	├──────────────┬────────────────────────────────────────┤
//	│ ◆ Dashboard 1│                                        │
//	│ ★ Leads     2│  active view                           │
//	│ ✎ Replies   3│                                        │
//	│ …            │                                        │
//	├──────────────┴────────────────────────────────────────┤
//	│                              ╭ ✓ Leads fetched ─────╮ │ toast
//	│ ? help  b sidebar  r refresh  q quit                  │ footer
//	└───────────────────────────────────────────────────────┘
//
// # Data flow
//
// The model never calls the API on the Update goroutine. Key handlers return
// tea.Cmds that call hurricane.API; the client queues toasts on the shared
// toast.Queue and brackets requests on the state.Store loading counter. The
// queue's change hook and the client's navigation requests reach the running
// program through a Bridge, which posts messages with Program.Send.
//
// The store snapshot is re-read on every tick and after every action, so the
// background poller, one-shot actions and the UI all converge on the same
// state.Store.
//
// # Preferences
//
// Theme, sidebar state and metrics period are saved through Options.SavePrefs
// whenever they change.
package ui
