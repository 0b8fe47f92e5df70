package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const modalWidth = 60

// inputModal asks for one line of text and hands it to submit on enter.
type inputModal struct {
	title  string
	hint   string
	input  textinput.Model
	submit func(value string) tea.Cmd
}

func newInputModal(title, hint, placeholder string, submit func(string) tea.Cmd) *inputModal {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = modalWidth - 8
	return &inputModal{title: title, hint: hint, input: ti, submit: submit}
}

func (im *inputModal) focus() tea.Cmd {
	return im.input.Focus()
}

func (im *inputModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Escape):
			return im, nil, true
		case key.Matches(k, keys.Confirm):
			value := strings.TrimSpace(im.input.Value())
			if value == "" || im.submit == nil {
				return im, nil, true
			}
			return im, im.submit(value), true
		}
	}
	var cmd tea.Cmd
	im.input, cmd = im.input.Update(msg)
	return im, cmd, false
}

func (im *inputModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(im.title))
	b.WriteString("\n")
	if im.hint != "" {
		b.WriteString(styles.MutedText.Width(modalWidth - 6).Render(im.hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(im.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter confirm · esc cancel"))
	return placeModal(theme, width, height, b.String())
}

// confirmModal runs onConfirm when the user answers yes.
type confirmModal struct {
	question  string
	onConfirm tea.Cmd
}

func newConfirmModal(question string, onConfirm tea.Cmd) *confirmModal {
	return &confirmModal{question: question, onConfirm: onConfirm}
}

func (cm *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return cm, nil, false
	}
	switch {
	case key.Matches(k, keys.Confirm), k.String() == "y", k.String() == "Y":
		return cm, cm.onConfirm, true
	case key.Matches(k, keys.Escape), k.String() == "n", k.String() == "N":
		return cm, nil, true
	}
	return cm, nil, false
}

func (cm *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.Text.Bold(true).Render(cm.question) + "\n\n" +
		styles.FaintText.Render("y/enter confirm · n/esc cancel")
	return placeModal(theme, width, height, body)
}

// placeModal centers a bordered box over a blank screen.
func placeModal(theme Theme, width, height int, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(modalWidth).
		Render(content)
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
