package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/softwrhq/hurricane/internal/toast"
)

// renderHeader renders the status bar: logo, API origin, loading and freshness.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBarStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("hurricane", styles.Logo)}
	if base := m.store.BaseURL(); base != "" {
		parts = append(parts, bg.Render(base, styles.MutedText))
	}
	if period := m.store.MetricsPeriod(); period != "" {
		parts = append(parts, bg.Render("period "+period, styles.FaintText))
	}

	switch {
	case m.store.Loading():
		label := m.spinner.View() + " Loading"
		if n := m.store.InFlight(); n > 1 {
			label += fmt.Sprintf(" (%d requests)", n)
		}
		parts = append(parts, bg.Render(label, styles.AccentText))
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("API unreachable, retrying", styles.DangerText))
	case m.snapshot.LastError != nil:
		parts = append(parts, bg.Render("Refresh failed", styles.WarningText))
	case !m.snapshot.LastUpdated.IsZero():
		parts = append(parts, bg.Render("Updated "+m.snapshot.LastUpdated.Format("15:04:05"), styles.MutedText))
	}

	if m.signedOut {
		parts = append(parts, bg.Render("Signed out", styles.WarningText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

// renderFooter renders the command bar for the current view.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBarStyle(m.theme.Surface)

	hints := [][2]string{{"?", "help"}, {"b", "sidebar"}, {"r", "refresh"}}
	switch m.currentView {
	case ViewDashboard:
		hints = append(hints, [2]string{"[/]", "period"}, [2]string{"s", "scan"})
	case ViewLeads:
		hints = append(hints, [2]string{"g", "reply"}, [2]string{"s", "scan"})
	case ViewKeywords, ViewSubreddits:
		hints = append(hints, [2]string{"a", "add"}, [2]string{"d", "remove"})
	case ViewSettings:
		hints = append(hints, [2]string{"L", "sign in"}, [2]string{"O", "sign out"}, [2]string{"F", "feedback"})
	}
	if m.store.IsShowingToast() {
		hints = append(hints, [2]string{"x", "dismiss"})
	}
	hints = append(hints, [2]string{"q", "quit"})

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, bg.Render(h[0], styles.AccentText)+bg.Spaces(1)+bg.Render(h[1], styles.MutedText))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(parts, bg.Spaces(3)))
}

// renderSidebar lists the views; collapsed it shows icons only.
func (m Model) renderSidebar(height int) string {
	styles := m.theme.Styles()
	open := m.store.SidebarOpen() && m.width >= LayoutCompactWidth

	width := sidebarCompactWidth
	if open {
		width = sidebarWidth
	}

	lines := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		label := v.icon()
		if open {
			label = padRight(v.icon(), 3) + v.String()
			if i < 6 {
				label = padRight(label, width-5) + string(rune('1'+i))
			}
		}
		style := styles.MutedText
		if v == m.currentView {
			style = styles.Selected.Bold(true)
		}
		lines = append(lines, style.Width(width-2).Render(label))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Width(width).
		Height(height).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderToast renders the visible notification, or "" when none is showing.
func (m Model) renderToast() string {
	if !m.store.IsShowingToast() {
		return ""
	}
	t, ok := m.store.CurrentToast()
	if !ok {
		return ""
	}
	styles := m.theme.Styles()

	toastWidth := m.width / 3
	if toastWidth < 30 {
		toastWidth = 30
	}
	if toastWidth > 50 {
		toastWidth = 50
	}
	text := severityIcon(t.Severity) + " " + t.Message
	if more := m.store.QueuedToasts(); more > 0 {
		text += fmt.Sprintf("  +%d more", more)
	}
	box := styles.ToastStyle(t.Severity).
		Width(toastWidth).
		Render(text)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, box)
}

func severityIcon(s toast.Severity) string {
	switch s {
	case toast.Success:
		return "✓"
	case toast.Error:
		return "✗"
	case toast.Warning:
		return "!"
	default:
		return "i"
	}
}
