package ansi

import "neurondemo/internal/playback"

// PlainTranscript renders entries without color markers, newline
// terminated, as a finished headless run prints them
func PlainTranscript(entries []playback.HistoryEntry) string {
	if len(entries) == 0 {
		return ""
	}
	return StripMarkers(playback.Transcript(entries)) + "\n"
}
