package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const (
	helpWidth    = 52
	helpKeyWidth = 10
)

type helpGroup struct {
	title    string
	bindings []key.Binding
}

// helpGroups lists the bindings shown in the help overlay, taking the
// labels from the bindings themselves so the two cannot drift apart.
func (k keyMap) helpGroups() []helpGroup {
	return []helpGroup{
		{"Views", []key.Binding{
			k.ViewDashboard, k.ViewLeads, k.ViewReplies, k.ViewKeywords,
			k.ViewSubreddits, k.ViewSettings, k.ViewLogs, k.Tab, k.Escape,
		}},
		{"Movement", []key.Binding{k.Down, k.Up, k.Top, k.Bottom}},
		{"Leads", []key.Binding{k.Scan, k.GenerateReply, k.PrevPeriod, k.NextPeriod}},
		{"Keywords & Subreddits", []key.Binding{k.Add, k.Remove}},
		{"Account", []key.Binding{k.SignIn, k.SignOut, k.Feedback}},
		{"General", []key.Binding{
			k.Refresh, k.SkipToast, k.ToggleSidebar, k.CycleTheme, k.Help, k.Quit,
		}},
	}
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(helpKeyWidth)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))

	for _, group := range m.keys.helpGroups() {
		b.WriteString("\n\n")
		b.WriteString(styles.AccentText.Bold(true).Render(group.title))
		for _, binding := range group.bindings {
			h := binding.Help()
			b.WriteString("\n")
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(styles.Text.Render(h.Desc))
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(helpWidth).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
