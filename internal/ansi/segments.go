package ansi

import "strings"

// Style is the color class of a segment
type Style int

const (
	StyleNone Style = iota
	StyleGreen
	StyleYellow
	StyleCyan
)

func (s Style) String() string {
	switch s {
	case StyleGreen:
		return "green"
	case StyleYellow:
		return "yellow"
	case StyleCyan:
		return "cyan"
	}
	return "none"
}

// Marker returns the escape sequence that opens a run of s
func (s Style) Marker() string {
	switch s {
	case StyleGreen:
		return MarkerGreen
	case StyleYellow:
		return MarkerYellow
	case StyleCyan:
		return MarkerCyan
	}
	return ""
}

// Recognized markers. Anything else, including other SGR sequences, is
// plain text to the segment renderer.
const (
	MarkerGreen  = "\x1b[32m"
	MarkerYellow = "\x1b[33m"
	MarkerCyan   = "\x1b[36m"
	MarkerEnd    = "\x1b[0m"
)

var markers = []struct {
	seq   string
	style Style
}{
	{MarkerGreen, StyleGreen},
	{MarkerYellow, StyleYellow},
	{MarkerCyan, StyleCyan},
	{MarkerEnd, StyleNone},
}

// Segment is a run of text with a single style
type Segment struct {
	Text  string
	Style Style
}

// matchMarker reports the recognized marker at the start of s
func matchMarker(s string) (Style, int, bool) {
	if len(s) < 4 || s[0] != '\x1b' {
		return StyleNone, 0, false
	}
	for _, m := range markers {
		if strings.HasPrefix(s, m.seq) {
			return m.style, len(m.seq), true
		}
	}
	return StyleNone, 0, false
}

// Segments splits line into styled runs with the markers removed. A color
// marker styles the text up to the next marker; the end marker returns to
// StyleNone. Empty runs between adjacent markers are dropped, so a line
// without text yields no segments.
func Segments(line string) []Segment {
	var (
		segments []Segment
		style    = StyleNone
		start    = 0
	)
	flush := func(end int) {
		if end > start {
			segments = append(segments, Segment{Text: line[start:end], Style: style})
		}
	}

	for i := 0; i < len(line); {
		next, n, ok := matchMarker(line[i:])
		if !ok {
			i++
			continue
		}
		flush(i)
		style = next
		i += n
		start = i
	}
	flush(len(line))
	return segments
}

// StripMarkers removes the recognized markers and keeps everything else
func StripMarkers(line string) string {
	if !strings.Contains(line, "\x1b[") {
		return line
	}
	var b strings.Builder
	for _, seg := range Segments(line) {
		b.WriteString(seg.Text)
	}
	return b.String()
}
