package playback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurondemo/internal/playback"
	"neurondemo/internal/playback/clocktest"
)

func TestHistoryMirrorsScheduler(t *testing.T) {
	clock := clocktest.New()
	sched := playback.NewScheduler(playback.Options{Clock: clock})
	history := playback.NewHistory()
	history.Attach(sched.Bus())

	sched.SelectScript(demoScript())
	require.NoError(t, sched.Start())

	clock.Step()
	assert.Zero(t, history.Len())

	clock.RunUntilIdle(10000)
	assert.Equal(t, sched.Snapshot().History, history.Entries())

	sched.Reset()
	assert.Zero(t, history.Len())
}

func TestHistoryReplaceIgnoresOutOfRange(t *testing.T) {
	h := playback.NewHistory()
	h.Append(playback.HistoryEntry{Command: "ls"})

	h.Replace(3, playback.HistoryEntry{Command: "nope"})
	h.Replace(-1, playback.HistoryEntry{Command: "nope"})
	h.Replace(0, playback.HistoryEntry{Command: "ls", Output: []string{"a"}})

	entries := h.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"a"}, entries[0].Output)
}

func TestHistoryEntriesIsCopy(t *testing.T) {
	h := playback.NewHistory()
	h.Append(playback.HistoryEntry{Command: "ls"})

	entries := h.Entries()
	entries[0].Command = "rm -rf /"

	assert.Equal(t, "ls", h.Entries()[0].Command)
}
