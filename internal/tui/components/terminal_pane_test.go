package components

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"neurondemo/internal/ansi"
	"neurondemo/internal/catalog"
	"neurondemo/internal/playback"
	"neurondemo/internal/theme"
)

var tagPattern = regexp.MustCompile(`\[[#a-zA-Z0-9:\-]+\]`)

// visible drops color tags and unescapes brackets
func visible(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, "[]", "]")
}

func render(c TerminalContent) string {
	t := theme.NewMidnightTheme()
	return RenderTerminal(ansi.NewRenderer(t), t, c)
}

func demo() catalog.Demo {
	return catalog.Demo{
		Key:         catalog.Key{Category: "vectors", Subcategory: "operations"},
		Title:       "Vectors: Operations",
		Description: "Vector creation and arithmetic",
		Badges:      []string{"➕ Creation", "🔢 Arithmetic"},
	}
}

func TestRenderWelcome(t *testing.T) {
	out := visible(render(TerminalContent{Demo: demo()}))

	assert.Contains(t, out, "NeuronDB Interactive Demo Terminal")
	assert.Contains(t, out, "Vector creation and arithmetic")
	assert.Contains(t, out, "‹ ➕ Creation ›")
	assert.Contains(t, out, "Ready to demonstrate Vectors: Operations.")
}

func TestRenderWelcomeWithoutDemo(t *testing.T) {
	out := visible(render(TerminalContent{}))
	assert.Contains(t, out, "Select a demo above")
}

func TestRenderHistoryAndCurrentLine(t *testing.T) {
	snap := playback.Snapshot{
		Status: playback.StatusTypingCommand,
		History: []playback.HistoryEntry{
			{Command: "psql -d neurondb", Output: []string{"psql (18.3)"}},
			{Command: "SELECT '[1,2]'::vector;", Output: []string{ansi.MarkerGreen + "[1,2]" + ansi.MarkerEnd}, InteractivePrompt: true},
		},
		Current: playback.CurrentLine{Text: "SELECT 2", Typing: true, Interactive: true},
	}

	raw := render(TerminalContent{Snapshot: snap, Demo: demo(), CursorOn: true})
	lines := strings.Split(visible(raw), "\n")

	assert.Equal(t, []string{
		"$ psql -d neurondb",
		"  psql (18.3)",
		"",
		"neurondb=# SELECT '[1,2]'::vector;",
		"  [1,2]",
		"",
		"neurondb=# SELECT 2█",
	}, lines)
	assert.Contains(t, raw, theme.Hex(theme.NewMidnightTheme().SegmentColors().Green))
}

func TestRenderCursorBlinkKeepsLayout(t *testing.T) {
	snap := playback.Snapshot{
		Status:  playback.StatusTypingCommand,
		Current: playback.CurrentLine{Text: "SEL", Typing: true},
	}
	on := visible(render(TerminalContent{Snapshot: snap, CursorOn: true}))
	off := visible(render(TerminalContent{Snapshot: snap, CursorOn: false}))

	assert.Equal(t, "$ SEL█", on)
	assert.Equal(t, "$ SEL ", off)
}

func TestRenderIdlePromptAfterRun(t *testing.T) {
	snap := playback.Snapshot{
		Status:    playback.StatusIdle,
		StepIndex: -1,
		History:   []playback.HistoryEntry{{Command: "ls"}},
		Current:   playback.CurrentLine{Interactive: true},
	}
	lines := strings.Split(visible(render(TerminalContent{Snapshot: snap})), "\n")
	assert.Equal(t, []string{"$ ls", "", "neurondb=#  "}, lines)
}

func TestRenderStoppedWhileTypingFirstCommand(t *testing.T) {
	snap := playback.Snapshot{
		Status:  playback.StatusStopped,
		Current: playback.CurrentLine{Text: "CREATE EXT", Typing: true},
	}
	out := visible(render(TerminalContent{Snapshot: snap, Demo: demo()}))
	assert.Equal(t, "$ CREATE EXT ", out)
}

func TestRenderWrapsLongCommands(t *testing.T) {
	snap := playback.Snapshot{
		Status:  playback.StatusTypingCommand,
		Current: playback.CurrentLine{Text: "SELECT abcdefghij;", Typing: true},
	}
	lines := strings.Split(visible(render(TerminalContent{Snapshot: snap, Width: 10})), "\n")

	// "$ " takes two cells and one is kept for the cursor
	assert.Equal(t, []string{
		"$ SELECT ",
		"  abcdefg",
		"  hij; ",
	}, lines)
}

func TestWrapCellsWideRunes(t *testing.T) {
	assert.Equal(t, []string{"ab"}, wrapCells("ab", 4))
	assert.Equal(t, []string{"日本", "語"}, wrapCells("日本語", 4))
	assert.Equal(t, []string{"a日", "本"}, wrapCells("a日本", 4))
}
