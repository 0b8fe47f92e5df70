package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/softwrhq/hurricane/internal/toast"
)

func TestGetTheme_FallsBackToDracula(t *testing.T) {
	if got := GetTheme("nope").Name; got != "Dracula" {
		t.Fatalf("GetTheme(unknown).Name = %q, want %q", got, "Dracula")
	}
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want %q", got, "Slate")
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(unknown) = %q, want Dracula", got)
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames() len = %d, want 2", len(names))
	}
	for _, name := range names {
		if GetTheme(name).Name != name {
			t.Fatalf("ThemeNames() lists %q but GetTheme returns a different theme", name)
		}
	}
}

func TestToastStyle_ColorPerSeverity(t *testing.T) {
	th := GetTheme("Dracula")
	styles := th.Styles()

	tests := []struct {
		severity toast.Severity
		want     string
	}{
		{toast.Success, th.Success},
		{toast.Error, th.Danger},
		{toast.Warning, th.Warning},
		{toast.Info, th.Info},
		{toast.Severity("other"), th.Info},
	}
	for _, tt := range tests {
		got := styles.ToastStyle(tt.severity).GetForeground()
		if got != lipgloss.Color(tt.want) {
			t.Errorf("ToastStyle(%q) foreground = %v, want %v", tt.severity, got, tt.want)
		}
	}
}

func TestStatusStyle_UnknownUsesMuted(t *testing.T) {
	th := GetTheme("Slate")
	styles := th.Styles()
	if got := styles.StatusStyle("active").GetBackground(); got != lipgloss.Color(th.StatusColors["active"]) {
		t.Fatalf("StatusStyle(active) background = %v, want %v", got, th.StatusColors["active"])
	}
	if got := styles.StatusStyle("mystery").GetBackground(); got != lipgloss.Color(th.Muted) {
		t.Fatalf("StatusStyle(unknown) background = %v, want %v", got, th.Muted)
	}
}
