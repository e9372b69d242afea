package ansi

import "strings"

type stripState int

const (
	stateText stripState = iota
	stateEscape
	stateCSI
)

// StreamingStripper removes every CSI escape sequence from text, not only
// the recognized color markers. A sequence split across two chunks is held
// back until its final byte arrives.
type StreamingStripper struct {
	state   stripState
	pending []byte
}

// NewStreamingStripper creates a stripper in the text state
func NewStreamingStripper() *StreamingStripper {
	return &StreamingStripper{}
}

// StripChunk returns chunk without escape sequences. An ESC not followed by
// '[' is kept as text.
func (s *StreamingStripper) StripChunk(chunk string) string {
	out := make([]byte, 0, len(chunk))

	for i := 0; i < len(chunk); i++ {
		c := chunk[i]
		switch s.state {
		case stateText:
			if c == '\x1b' {
				s.state = stateEscape
				s.pending = append(s.pending[:0], c)
				continue
			}
			out = append(out, c)

		case stateEscape:
			if c != '[' {
				out = append(out, s.pending...)
				out = append(out, c)
				s.pending = s.pending[:0]
				s.state = stateText
				continue
			}
			s.pending = append(s.pending, c)
			s.state = stateCSI

		case stateCSI:
			s.pending = append(s.pending, c)
			if isFinalByte(c) {
				s.pending = s.pending[:0]
				s.state = stateText
			}
		}
	}
	return string(out)
}

// a letter ends a CSI sequence; digits and separators continue it
func isFinalByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// Pending returns a partial sequence held back at the end of the input
func (s *StreamingStripper) Pending() string {
	return string(s.pending)
}

// Reset drops any held back sequence
func (s *StreamingStripper) Reset() {
	s.state = stateText
	s.pending = s.pending[:0]
}

// KeepMarkers strips every escape sequence from line except the recognized
// color markers. Styled runs come back as marker, text, end marker.
func (s *StreamingStripper) KeepMarkers(line string) string {
	var b strings.Builder
	for _, seg := range Segments(line) {
		text := s.StripChunk(seg.Text)
		if text == "" {
			continue
		}
		if seg.Style == StyleNone {
			b.WriteString(text)
			continue
		}
		b.WriteString(seg.Style.Marker())
		b.WriteString(text)
		b.WriteString(MarkerEnd)
	}
	return b.String()
}

// StripString strips a complete string. A trailing partial sequence is
// dropped.
func StripString(text string) string {
	return NewStreamingStripper().StripChunk(text)
}
