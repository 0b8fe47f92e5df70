package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// barStyle paints every cell of a header or footer segment, spaces
// included. A lipgloss reset between segments otherwise leaves gaps in the
// bar's background.
type barStyle struct {
	fill lipgloss.Style
}

func newBarStyle(bg string) barStyle {
	return barStyle{fill: lipgloss.NewStyle().Background(lipgloss.Color(bg))}
}

// Render applies style to each word and joins them with filled spaces.
func (b barStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Inherit(b.fill)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.Spaces(1))
}

// Spaces returns n filled spaces.
func (b barStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return b.fill.Render(strings.Repeat(" ", n))
}

// Join joins already rendered parts with sep.
func (b barStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, sep)
}
