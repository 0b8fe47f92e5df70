package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/softwrhq/hurricane/internal/hurricane"
)

// renderDashboard shows metric cards, the daily chart and top performers.
func (m Model) renderDashboard(width int) string {
	styles := m.theme.Styles()
	snap := m.snapshot

	var sections []string
	sections = append(sections, styles.Text.Bold(true).Render("Dashboard"))

	if acct := m.renderAccountLine(); acct != "" {
		sections = append(sections, acct)
	}

	if !snap.HasMetrics {
		msg := "No metrics yet."
		if snap.LastError != nil {
			msg = "Metrics unavailable: " + snap.LastError.Error()
		}
		sections = append(sections, styles.MutedText.Render(msg))
		return strings.Join(sections, "\n\n")
	}

	metrics := snap.Metrics
	cardWidth := (width - 8) / 4
	if cardWidth < 14 {
		cardWidth = 14
	}
	cards := []string{
		m.metricCard("Leads", metrics.LeadsCount, metrics.LeadsGrowth, cardWidth),
		m.metricCard("Replies", metrics.RepliesCount, metrics.RepliesGrowth, cardWidth),
		m.metricCard("Subreddits", metrics.SubredditsCount, metrics.SubredditsGrowth, cardWidth),
		m.metricCard("Keywords", metrics.KeywordsCount, metrics.KeywordsGrowth, cardWidth),
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cards...))

	label := metrics.Period
	if metrics.PeriodDays > 0 {
		label = fmt.Sprintf("last %d days", metrics.PeriodDays)
	}
	if label != "" {
		sections = append(sections, styles.FaintText.Render("Compared with the previous "+label))
	}
	if metrics.Message != "" {
		sections = append(sections, styles.InfoText.Render(metrics.Message))
	}

	if chart := m.renderDailyChart("Leads per day", metrics.LeadsByDay, width); chart != "" {
		sections = append(sections, chart)
	}

	var tops []string
	if t := m.renderTopPerformers("Top subreddits", metrics.TopSubreddits); t != "" {
		tops = append(tops, t)
	}
	if t := m.renderTopPerformers("Top keywords", metrics.TopKeywords); t != "" {
		tops = append(tops, t)
	}
	if len(tops) > 0 {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, tops...))
	}

	return strings.Join(sections, "\n\n")
}

func (m Model) renderAccountLine() string {
	if !m.snapshot.HasAccount {
		return ""
	}
	styles := m.theme.Styles()
	acct := m.snapshot.Account
	parts := []string{styles.Text.Render(displayName(acct))}
	if status := acct.Status(); status != "" {
		parts = append(parts, styles.StatusStyle(status).Render(titleCase(status)))
	}
	parts = append(parts, styles.MutedText.Render("searches "+acct.SearchUsage()))
	return strings.Join(parts, "  ")
}

func displayName(u hurricane.UserWithSubscription) string {
	if strings.TrimSpace(u.FullName) != "" {
		return u.FullName
	}
	return u.Email
}

func (m Model) metricCard(title string, count int, change float64, width int) string {
	styles := m.theme.Styles()
	changeStyle := styles.MutedText
	switch {
	case change > 0:
		changeStyle = styles.SuccessText
	case change < 0:
		changeStyle = styles.DangerText
	}
	body := styles.MutedText.Render(title) + "\n" +
		styles.Text.Bold(true).Render(strconv.Itoa(count)) + "\n" +
		changeStyle.Render(growth(change))
	return styles.Panel.Width(width).Render(body)
}

// renderDailyChart draws one horizontal bar per day, scaled to width.
func (m Model) renderDailyChart(title string, days []hurricane.DailyMetric, width int) string {
	if len(days) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	peak := 0
	for _, d := range days {
		if d.Count > peak {
			peak = d.Count
		}
	}
	barMax := width - 20
	if barMax < 10 {
		barMax = 10
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	for _, d := range days {
		n := 0
		if peak > 0 {
			n = max(d.Count, 0) * barMax / peak
		}
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(padRight(d.Date, 11)))
		b.WriteString(styles.AccentText.Render(strings.Repeat("█", n)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(strconv.Itoa(d.Count)))
	}
	return b.String()
}

func (m Model) renderTopPerformers(title string, rows []hurricane.TopPerformer) string {
	if len(rows) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	for i, r := range rows {
		if i == 5 {
			break
		}
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(padRight(truncate(r.Name, 20), 22)))
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%4d  acc %.0f%%  q %.0f%%", r.Count, r.AvgAccuracy, r.AvgQuality)))
	}
	return lipgloss.NewStyle().PaddingRight(4).Render(b.String())
}
