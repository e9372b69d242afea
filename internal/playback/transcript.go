package playback

import "strings"

const (
	ShellPrompt       = "$"
	InteractivePrompt = "neurondb=#"
)

// Prompt returns the prompt glyph for a line
func Prompt(interactive bool) string {
	if interactive {
		return InteractivePrompt
	}
	return ShellPrompt
}

// Transcript renders entries as "<prompt> command" followed by the output
// lines, with a blank line between entries. Color markers are kept.
func Transcript(entries []HistoryEntry) string {
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		var b strings.Builder
		b.WriteString(Prompt(entry.InteractivePrompt))
		b.WriteString(" ")
		b.WriteString(entry.Command)
		for _, line := range entry.Output {
			b.WriteString("\n")
			b.WriteString(line)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
