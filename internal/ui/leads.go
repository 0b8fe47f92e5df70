package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/softwrhq/hurricane/internal/hurricane"
)

// leadDetailHeight is the space under the table for the selected lead.
const leadDetailHeight = 9

func newLeadsTable() table.Model {
	return table.New(
		table.WithColumns(leadColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
}

// leadColumns sizes the title column to what the other columns leave.
func leadColumns(width int) []table.Column {
	fixed := []table.Column{
		{Title: "Subreddit", Width: 16},
		{Title: "Score", Width: 6},
		{Title: "Age", Width: 5},
	}
	if width >= LayoutWideWidth {
		fixed = append(fixed,
			table.Column{Title: "Quality", Width: 8},
			table.Column{Title: "Accuracy", Width: 8},
		)
	}
	used := 0
	for _, c := range fixed {
		used += c.Width + 2
	}
	titleWidth := width - used - 2
	if titleWidth < 20 {
		titleWidth = 20
	}
	return append([]table.Column{{Title: "Title", Width: titleWidth}}, fixed...)
}

func (m *Model) applyTheme() {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(m.theme.Accent)).
		Bold(true)
	s.Cell = s.Cell.Foreground(lipgloss.Color(m.theme.Text))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.SelectionBg)).
		Bold(false)
	m.leadsTable.SetStyles(s)
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
}

// layoutLeadsTable fits the table to the content area.
func (m *Model) layoutLeadsTable() {
	if m.width == 0 {
		return
	}
	sidebar := sidebarCompactWidth
	if m.store.SidebarOpen() && m.width >= LayoutCompactWidth {
		sidebar = sidebarWidth
	}
	width := m.width - sidebar - 2
	height := m.height - 4 - leadDetailHeight
	if height < 3 {
		height = 3
	}
	m.leadsTable.SetColumns(leadColumns(width))
	m.leadsTable.SetWidth(width)
	m.leadsTable.SetHeight(height)
	m.updateLeadsTable()
}

// updateLeadsTable rebuilds rows from the snapshot, keeping the cursor in range.
func (m *Model) updateLeadsTable() {
	wide := len(m.leadsTable.Columns()) > 4
	now := time.Now()
	rows := make([]table.Row, 0, len(m.snapshot.Leads))
	for _, lead := range m.snapshot.Leads {
		row := table.Row{
			lead.Title,
			"r/" + strings.TrimPrefix(lead.Subreddit, "r/"),
			strconv.Itoa(lead.Score),
			age(lead.ParsedCreatedTime(), now),
		}
		if wide {
			row = append(row, percent(lead.Quality()), percent(lead.Accuracy()))
		}
		rows = append(rows, row)
	}
	m.leadsTable.SetRows(rows)
	if c := m.leadsTable.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.leadsTable.SetCursor(len(rows) - 1)
	}
}

func (m Model) selectedLead() (hurricane.RedditPost, bool) {
	idx := m.leadsTable.Cursor()
	if idx < 0 || idx >= len(m.snapshot.Leads) {
		return hurricane.RedditPost{}, false
	}
	return m.snapshot.Leads[idx], true
}

func (m Model) handleLeadsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.GenerateReply) {
		lead, ok := m.selectedLead()
		if !ok {
			return m, nil
		}
		return m, m.generateReplyCmd(lead.ID)
	}
	var cmd tea.Cmd
	m.leadsTable, cmd = m.leadsTable.Update(msg)
	return m, cmd
}

func (m Model) renderLeads(width int) string {
	styles := m.theme.Styles()
	if len(m.snapshot.Leads) == 0 {
		return styles.Text.Bold(true).Render("Leads") + "\n\n" +
			styles.MutedText.Render("No leads yet. Press s to scan your subreddits.")
	}

	parts := []string{m.leadsTable.View()}

	if lead, ok := m.selectedLead(); ok {
		var b strings.Builder
		b.WriteString(styles.Text.Bold(true).Render(truncate(lead.Title, width)))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("u/%s in r/%s · %d comments", lead.Author, lead.Subreddit, lead.NumComments)))
		if link := leadLink(lead); link != "" {
			b.WriteString("\n")
			b.WriteString(styles.InfoText.Render(link))
		}
		if len(lead.MatchedWords) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.AccentText.Render("matched: " + strings.Join(lead.MatchedWords, ", ")))
		}
		if lead.SelfText != nil && strings.TrimSpace(*lead.SelfText) != "" {
			b.WriteString("\n")
			b.WriteString(styles.FaintText.Render(truncate(strings.Join(strings.Fields(*lead.SelfText), " "), width*2)))
		}
		if m.lastReply != nil && m.lastReplyTo == lead.ID {
			b.WriteString("\n")
			b.WriteString(styles.SuccessText.Render("Reply: "))
			b.WriteString(styles.Text.Render(truncate(m.lastReply.ReplyText, width*2)))
		}
		parts = append(parts, lipgloss.NewStyle().MaxHeight(leadDetailHeight).Render(b.String()))
	}
	return strings.Join(parts, "\n")
}

func leadLink(p hurricane.RedditPost) string {
	if p.Permalink != "" {
		if strings.HasPrefix(p.Permalink, "http") {
			return p.Permalink
		}
		return "https://reddit.com" + p.Permalink
	}
	return p.RedditPostURL
}

// percent renders a 0..1 or 0..100 score as a whole percentage.
func percent(v float64) string {
	if v <= 1 {
		v *= 100
	}
	return fmt.Sprintf("%.0f%%", v)
}

func age(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
