package playback

import (
	"slices"
	"sync"
)

// HistorySink receives the executed steps. The scheduler only ever writes
// to a sink, it never reads it back.
type HistorySink interface {
	Append(entry HistoryEntry)
	Replace(index int, entry HistoryEntry)
	Clear()
}

// SinkHandler adapts a HistorySink to scheduler events
func SinkHandler(sink HistorySink) EventHandler {
	return func(ev Event) {
		switch ev.Type {
		case EventHistoryAppended:
			sink.Append(ev.Entry)
		case EventOutputRevealed:
			sink.Replace(ev.Index, ev.Entry)
		case EventHistoryCleared:
			sink.Clear()
		}
	}
}

// History is an in-memory HistorySink safe for concurrent readers
type History struct {
	mu      sync.RWMutex
	entries []HistoryEntry
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{}
}

// Attach subscribes the history to bus and returns the subscription id
func (h *History) Attach(bus *EventBus) string {
	return bus.SubscribeAll(SinkHandler(h))
}

func (h *History) Append(entry HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, entry)
}

// Replace overwrites the entry at index. Out of range indexes are ignored.
func (h *History) Replace(index int, entry HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if index < 0 || index >= len(h.entries) {
		return
	}
	h.entries[index] = entry
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Entries returns a copy of the recorded entries
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.entries)
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}
