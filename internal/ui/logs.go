package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/softwrhq/hurricane/internal/logtail"
)

func (m Model) renderLogs(width int) string {
	styles := m.theme.Styles()
	title := styles.Text.Bold(true).Render("Logs") + "  " + styles.MutedText.Render(m.logFile)
	if m.logErr != nil {
		return title + "\n\n" + styles.DangerText.Render(m.logErr.Error())
	}
	if len(m.logEntries) == 0 {
		return title + "\n\n" + styles.MutedText.Render("Nothing logged yet.")
	}

	cursor := m.cursor[ViewLogs]
	start, end := visibleWindow(len(m.logEntries), cursor, m.contentHeight()-2)

	lines := []string{title, ""}
	for i := start; i < end; i++ {
		line := m.formatLogEntry(m.logEntries[i], width)
		if i == cursor {
			line = styles.Selected.Width(width).Render(ansi.Strip(line))
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) formatLogEntry(e logtail.Entry, width int) string {
	styles := m.theme.Styles()
	if !e.Parsed {
		return styles.FaintText.Render(truncate(e.Raw, width))
	}
	ts := ""
	if !e.Time.IsZero() {
		ts = e.Time.Local().Format("15:04:05") + " "
	}
	levelStyle := styles.InfoText
	switch {
	case e.Level >= slog.LevelError:
		levelStyle = styles.DangerText
	case e.Level >= slog.LevelWarn:
		levelStyle = styles.WarningText
	case e.Level < slog.LevelInfo:
		levelStyle = styles.FaintText
	}

	attrs := make([]string, 0, len(e.Attrs))
	for _, a := range e.Attrs {
		attrs = append(attrs, a.Key+"="+a.Value)
	}
	text := e.Message
	if len(attrs) > 0 {
		text += " " + strings.Join(attrs, " ")
	}
	budget := width - len(ts) - 6
	return styles.MutedText.Render(ts) +
		levelStyle.Render(padRight(e.Level.String(), 5)) + " " +
		styles.Text.Render(truncate(text, budget))
}
