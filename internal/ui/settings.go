package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) renderSettings(width int) string {
	styles := m.theme.Styles()
	label := func(s string) string { return styles.MutedText.Render(padRight(s, 16)) }

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Settings"))
	b.WriteString("\n")

	if m.signedOut {
		b.WriteString("\n")
		b.WriteString(styles.WarningText.Render("You are signed out. Press L to sign in with Google."))
		b.WriteString("\n")
	}
	if m.authURL != "" {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render("Open this link in a browser to continue:"))
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Width(width).Render(m.authURL))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render("Account"))
	b.WriteString("\n")
	if m.snapshot.HasAccount {
		acct := m.snapshot.Account
		b.WriteString(label("Name") + styles.Text.Render(displayName(acct)) + "\n")
		b.WriteString(label("Email") + styles.Text.Render(acct.Email) + "\n")
		if acct.UserRole != "" {
			b.WriteString(label("Role") + styles.Text.Render(titleCase(acct.UserRole)) + "\n")
		}
		status := acct.Status()
		if status == "" {
			b.WriteString(label("Subscription") + styles.MutedText.Render("none") + "\n")
		} else {
			b.WriteString(label("Subscription") + styles.StatusStyle(status).Render(titleCase(status)) + "\n")
		}
		b.WriteString(label("Searches") + styles.Text.Render(acct.SearchUsage()) + "\n")
		if acct.TrialEndDate != nil && status == "trial" {
			b.WriteString(label("Trial ends") + styles.Text.Render(*acct.TrialEndDate) + "\n")
		}
	} else {
		b.WriteString(styles.MutedText.Render("Not loaded.") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render("Dashboard"))
	b.WriteString("\n")
	b.WriteString(label("API") + styles.Text.Render(m.store.BaseURL()) + "\n")
	b.WriteString(label("Theme") + styles.Text.Render(m.theme.Name) + "\n")
	period := m.store.MetricsPeriod()
	if period == "" {
		period = "default"
	}
	b.WriteString(label("Metrics period") + styles.Text.Render(period) + "\n")
	sidebar := "open"
	if !m.store.SidebarOpen() {
		sidebar = "collapsed"
	}
	b.WriteString(label("Sidebar") + styles.Text.Render(sidebar) + "\n")

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("L sign in · O sign out · F send feedback"))
	return b.String()
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Feedback) {
		modal := newInputModal("Send feedback", "Tell us what works and what does not.", "feedback", m.feedbackCmd)
		m.modal = modal
		return m, modal.focus()
	}
	return m, nil
}
