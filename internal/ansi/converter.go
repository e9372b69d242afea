package ansi

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"neurondemo/internal/theme"
)

// Renderer turns output lines into display text for one theme
type Renderer struct {
	theme theme.Theme
}

// NewRenderer creates a renderer for t, or for the current theme when t is nil
func NewRenderer(t theme.Theme) *Renderer {
	if t == nil {
		t = theme.Current()
	}
	return &Renderer{theme: t}
}

// Color returns the display color of a style
func (r *Renderer) Color(style Style) tcell.Color {
	segments := r.theme.SegmentColors()
	switch style {
	case StyleGreen:
		return segments.Green
	case StyleYellow:
		return segments.Yellow
	case StyleCyan:
		return segments.Cyan
	}
	return r.theme.TerminalColors().Foreground
}

// Tview renders line with tview color tags. Segment text is escaped so
// brackets in SQL output are not taken for tags.
func (r *Renderer) Tview(line string) string {
	var b strings.Builder
	for _, seg := range Segments(line) {
		if seg.Style == StyleNone {
			b.WriteString(tview.Escape(seg.Text))
			continue
		}
		fmt.Fprintf(&b, "[%s]%s[-]", theme.Hex(r.Color(seg.Style)), tview.Escape(seg.Text))
	}
	return b.String()
}

// SGR renders line for a true color terminal, resetting after every styled
// segment
func (r *Renderer) SGR(line string) string {
	var b strings.Builder
	for _, seg := range Segments(line) {
		if seg.Style == StyleNone {
			b.WriteString(seg.Text)
			continue
		}
		fg, _ := colorToANSI(r.Color(seg.Style))
		fmt.Fprintf(&b, "\x1b[%sm%s\x1b[0m", fg, seg.Text)
	}
	return b.String()
}

// Plain drops the markers
func (r *Renderer) Plain(line string) string {
	return StripMarkers(line)
}

// colorToANSI converts a tcell.Color to true color ANSI codes using exact RGB values
func colorToANSI(color tcell.Color) (fg, bg string) {
	// Get exact RGB values from the theme color
	r, g, b := color.RGB()

	// Format: 38;2;r;g;b for foreground, 48;2;r;g;b for background
	fg = fmt.Sprintf("38;2;%d;%d;%d", r, g, b)
	bg = fmt.Sprintf("48;2;%d;%d;%d", r, g, b)

	return fg, bg
}
