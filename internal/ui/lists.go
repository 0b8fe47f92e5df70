package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// visibleWindow returns the [start,end) slice of count rows that keeps
// cursor on screen in height rows.
func visibleWindow(count, cursor, height int) (int, int) {
	if height <= 0 || count <= height {
		return 0, count
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > count {
		start = count - height
	}
	return start, start + height
}

func (m Model) contentHeight() int {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderReplies(width int) string {
	styles := m.theme.Styles()
	title := styles.Text.Bold(true).Render("Replies")
	replies := m.snapshot.Replies
	if len(replies) == 0 {
		return title + "\n\n" + styles.MutedText.Render("No replies yet. Open Leads and press g on a post.")
	}

	cursor := m.cursor[ViewReplies]
	// Each reply takes three lines.
	start, end := visibleWindow(len(replies), cursor, (m.contentHeight()-2)/3)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for i := start; i < end; i++ {
		r := replies[i]
		heading := truncate(r.PostTitle, width-4)
		meta := "r/" + r.PostSubreddit + " · u/" + r.PostAuthor
		text := truncate(strings.Join(strings.Fields(r.ReplyText), " "), width-4)

		b.WriteString("\n")
		if i == cursor {
			b.WriteString(styles.Selected.Width(width).Render("▸ " + heading))
		} else {
			b.WriteString(styles.Text.Render("  " + heading))
		}
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("  " + meta))
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("  " + text))
	}
	return b.String()
}

func (m Model) renderKeywords(width int) string {
	names := make([]string, 0, len(m.snapshot.Keywords))
	for _, k := range m.snapshot.Keywords {
		names = append(names, k.KeywordName)
	}
	return m.renderTerms("Keywords", "No keywords tracked. Press a to add some.", names, ViewKeywords, width)
}

func (m Model) renderSubreddits(width int) string {
	names := make([]string, 0, len(m.snapshot.Subreddits))
	for _, s := range m.snapshot.Subreddits {
		names = append(names, "r/"+strings.TrimPrefix(s.SubredditName, "r/"))
	}
	return m.renderTerms("Subreddits", "No subreddits tracked. Press a to add some.", names, ViewSubreddits, width)
}

func (m Model) renderTerms(title, empty string, names []string, v View, width int) string {
	styles := m.theme.Styles()
	head := styles.Text.Bold(true).Render(title) + "  " + styles.MutedText.Render(pluralCount(len(names), "tracked"))
	if len(names) == 0 {
		return head + "\n\n" + styles.MutedText.Render(empty)
	}
	cursor := m.cursor[v]
	start, end := visibleWindow(len(names), cursor, m.contentHeight()-2)

	lines := []string{head, ""}
	for i := start; i < end; i++ {
		if i == cursor {
			lines = append(lines, styles.Selected.Width(width).Render("▸ "+names[i]))
		} else {
			lines = append(lines, styles.Text.Render("  "+names[i]))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func pluralCount(n int, suffix string) string {
	return strconv.Itoa(n) + " " + suffix
}

// termNames returns the tracked names for the keyword or subreddit view.
func (m Model) termNames(v View) []string {
	var names []string
	if v == ViewSubreddits {
		for _, s := range m.snapshot.Subreddits {
			names = append(names, s.SubredditName)
		}
		return names
	}
	for _, k := range m.snapshot.Keywords {
		names = append(names, k.KeywordName)
	}
	return names
}

func (m Model) handleTermsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.currentView
	switch {
	case key.Matches(msg, m.keys.Add):
		noun := "keywords"
		placeholder := "crm, sales automation"
		if v == ViewSubreddits {
			noun = "subreddits"
			placeholder = "startups, SaaS"
		}
		modal := newInputModal(
			"Add "+noun,
			"Separate multiple "+noun+" with commas.",
			placeholder,
			func(value string) tea.Cmd { return m.addTermsCmd(v, splitList(value)) },
		)
		m.modal = modal
		return m, modal.focus()

	case key.Matches(msg, m.keys.Remove):
		names := m.termNames(v)
		cur := m.cursor[v]
		if cur < 0 || cur >= len(names) {
			return m, nil
		}
		remaining := make([]string, 0, len(names)-1)
		remaining = append(remaining, names[:cur]...)
		remaining = append(remaining, names[cur+1:]...)
		m.modal = newConfirmModal("Stop tracking "+names[cur]+"?", m.setTermsCmd(v, remaining))
		return m, nil
	}
	m.moveCursor(msg)
	return m, nil
}
