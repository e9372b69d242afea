package components

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"neurondemo/internal/ansi"
	"neurondemo/internal/catalog"
	"neurondemo/internal/playback"
	"neurondemo/internal/theme"
)

const (
	cursorBlock  = "█"
	outputIndent = "  "
	welcomeTitle = "NeuronDB Interactive Demo Terminal"
)

// TerminalContent is everything the playback pane shows
type TerminalContent struct {
	Snapshot playback.Snapshot
	Demo     catalog.Demo
	CursorOn bool
	Width    int // inner width in cells, 0 disables command wrapping
}

// TerminalComponent manages the playback pane
type TerminalComponent struct {
	view     *tview.TextView
	renderer *ansi.Renderer
	theme    theme.Theme
	last     string
}

// NewTerminalComponent creates the playback pane
func NewTerminalComponent(factory *theme.ThemedComponents) *TerminalComponent {
	view := factory.NewTextView()
	view.SetTitle(" neurondb-demo ")
	view.SetWordWrap(false)

	return &TerminalComponent{
		view:     view,
		renderer: ansi.NewRenderer(factory.Theme()),
		theme:    factory.Theme(),
	}
}

// GetView returns the text view
func (tc *TerminalComponent) GetView() *tview.TextView {
	return tc.view
}

// Text returns the last rendered content
func (tc *TerminalComponent) Text() string {
	return tc.last
}

// Update redraws the pane and keeps the newest line in view
func (tc *TerminalComponent) Update(snap playback.Snapshot, demo catalog.Demo, cursorOn bool) {
	_, _, width, _ := tc.view.GetInnerRect()
	text := RenderTerminal(tc.renderer, tc.theme, TerminalContent{
		Snapshot: snap,
		Demo:     demo,
		CursorOn: cursorOn,
		Width:    width,
	})
	if text == tc.last {
		return
	}
	tc.last = text
	tc.view.SetText(text)
	tc.view.ScrollToEnd()
}

// RenderTerminal returns the pane content as tview-tagged text
func RenderTerminal(r *ansi.Renderer, t theme.Theme, c TerminalContent) string {
	snap := c.Snapshot
	if len(snap.History) == 0 && !snap.Status.Active() && !snap.Current.Typing {
		return renderWelcome(t, c.Demo)
	}

	colors := t.TerminalColors()
	var lines []string
	for i, entry := range snap.History {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, commandLines(colors, entry.InteractivePrompt, entry.Command, "", c.Width)...)
		for _, out := range entry.Output {
			lines = append(lines, outputIndent+r.Tview(out))
		}
	}

	cursor := " "
	if c.CursorOn {
		cursor = fmt.Sprintf("[%s]%s[-]", theme.Hex(colors.Cursor), cursorBlock)
	}
	switch {
	case snap.Current.Typing:
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, commandLines(colors, snap.Current.Interactive, snap.Current.Text, cursor, c.Width)...)
	case !snap.Status.Active():
		// idle prompt after a finished or stopped run
		lines = append(lines, "", promptTag(colors, snap.Current.Interactive)+" "+cursor)
	}

	return strings.Join(lines, "\n")
}

func promptTag(colors theme.TerminalColors, interactive bool) string {
	return fmt.Sprintf("[%s::b]%s[-::-]", theme.Hex(colors.Prompt), tview.Escape(playback.Prompt(interactive)))
}

// commandLines renders "<prompt> command" and hard-wraps the command so
// continuation lines line up under its first character
func commandLines(colors theme.TerminalColors, interactive bool, command, suffix string, width int) []string {
	prompt := playback.Prompt(interactive)
	indent := runewidth.StringWidth(prompt) + 1

	var chunks []string
	if width > indent+1 {
		// leave a cell for the cursor
		chunks = wrapCells(command, width-indent-1)
	} else {
		chunks = []string{command}
	}

	cmdColor := theme.Hex(colors.Command)
	lines := make([]string, len(chunks))
	for i, chunk := range chunks {
		lead := strings.Repeat(" ", indent)
		if i == 0 {
			lead = promptTag(colors, interactive) + " "
		}
		lines[i] = fmt.Sprintf("%s[%s]%s[-]", lead, cmdColor, tview.Escape(chunk))
	}
	lines[len(lines)-1] += suffix
	return lines
}

// wrapCells splits s into pieces at most width cells wide
func wrapCells(s string, width int) []string {
	if runewidth.StringWidth(s) <= width {
		return []string{s}
	}
	var (
		chunks []string
		b      strings.Builder
		cells  int
	)
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if cells+w > width && cells > 0 {
			chunks = append(chunks, b.String())
			b.Reset()
			cells = 0
		}
		b.WriteRune(r)
		cells += w
	}
	chunks = append(chunks, b.String())
	return chunks
}

func renderWelcome(t theme.Theme, demo catalog.Demo) string {
	colors := t.WelcomeColors()
	muted := theme.Hex(t.TerminalColors().Muted)

	var b strings.Builder
	fmt.Fprintf(&b, "[%s::b]%s[-::-]\n\n", theme.Hex(colors.Title), welcomeTitle)
	if demo.Description != "" {
		fmt.Fprintf(&b, "[%s]%s[-]\n\n", theme.Hex(colors.Description), tview.Escape(demo.Description))
	}
	if len(demo.Badges) > 0 {
		badges := make([]string, len(demo.Badges))
		for i, badge := range demo.Badges {
			badges[i] = fmt.Sprintf("[%s]‹ %s ›[-]", theme.Hex(colors.Badge), tview.Escape(badge))
		}
		b.WriteString(strings.Join(badges, " "))
		b.WriteString("\n\n")
	}
	if demo.Title != "" {
		fmt.Fprintf(&b, "[%s]Ready to demonstrate [%s::b]%s[%s::-]. Press s to run the demo.[-]",
			muted, theme.Hex(colors.Highlight), tview.Escape(demo.Title), muted)
	} else {
		fmt.Fprintf(&b, "[%s]Select a demo above and press s to begin exploring NeuronDB capabilities[-]", muted)
	}
	return b.String()
}
