package ansi

import (
	"testing"

	"neurondemo/internal/theme"
)

func TestRenderer_Tview(t *testing.T) {
	r := NewRenderer(theme.NewTelixTheme())

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "(1 row)", "(1 row)"},
		{"green", "\x1b[32m✓ done\x1b[0m", "[#00ff00]✓ done[-]"},
		{"mixed", "CC  src/a.c  \x1b[32m✓\x1b[0m", "CC  src/a.c  [#00ff00]✓[-]"},
		{"cyan", "\x1b[36m# Workers\x1b[0m", "[#00ffff]# Workers[-]"},
		{"brackets escaped", " [1,2,3] | [4,5,6]", " [1,2,3[] | [4,5,6[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Tview(tt.input); got != tt.expected {
				t.Errorf("Tview(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRenderer_SGR(t *testing.T) {
	r := NewRenderer(theme.NewMidnightTheme())

	got := r.SGR("ok \x1b[33mwarn\x1b[0m")
	expected := "ok \x1b[38;2;250;204;21mwarn\x1b[0m"
	if got != expected {
		t.Errorf("SGR() = %q, want %q", got, expected)
	}

	if got := r.Plain("\x1b[36mx\x1b[0m"); got != "x" {
		t.Errorf("Plain() = %q", got)
	}
}

func TestRenderer_ColorFallsBackToForeground(t *testing.T) {
	th := theme.NewMidnightTheme()
	r := NewRenderer(th)
	if r.Color(StyleNone) != th.TerminalColors().Foreground {
		t.Error("StyleNone should use the terminal foreground")
	}
}
