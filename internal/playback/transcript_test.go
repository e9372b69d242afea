package playback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"neurondemo/internal/playback"
)

func TestTranscript(t *testing.T) {
	entries := []playback.HistoryEntry{
		{Command: "psql -d demo", Output: []string{"psql (17.2)"}},
		{Command: "SELECT 1;", Output: []string{"\x1b[32m1\x1b[0m", "(1 row)"}, InteractivePrompt: true},
		{Command: "\\q"},
	}

	want := "$ psql -d demo\npsql (17.2)\n\n" +
		"neurondb=# SELECT 1;\n\x1b[32m1\x1b[0m\n(1 row)\n\n" +
		"$ \\q"
	assert.Equal(t, want, playback.Transcript(entries))
	assert.Empty(t, playback.Transcript(nil))
}

func TestPrompt(t *testing.T) {
	assert.Equal(t, "$", playback.Prompt(false))
	assert.Equal(t, "neurondb=#", playback.Prompt(true))
}

func TestTimingsScaled(t *testing.T) {
	base := playback.DefaultTimings()
	fast := base.Scaled(playback.Speed2x)

	assert.Equal(t, base.TypeInterval/2, fast.TypeInterval)
	assert.Equal(t, base.BetweenSteps/2, fast.BetweenSteps)
	assert.Equal(t, base, base.Scaled(playback.Speed(7)))
	assert.Equal(t, "3×", playback.Speed3x.String())
	assert.False(t, playback.Speed(0).Valid())
}
