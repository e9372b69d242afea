package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurondemo/internal/ansi"
	"neurondemo/internal/catalog"
	"neurondemo/internal/playback"
	"neurondemo/internal/playback/clocktest"
	"neurondemo/internal/theme"
)

func goldenDemo() catalog.Demo {
	return catalog.Demo{
		Key:   catalog.Key{Category: "smoke"},
		Title: "Smoke",
		Script: playback.Script{
			Name: "smoke",
			Steps: []playback.Step{
				{
					Command: "echo ready",
					Output:  []string{"\x1b[32mready\x1b[0m"},
				},
				{
					Command:           "SELECT 1;",
					Output:            []string{" ?column?", "----------", "        1", "(1 row)"},
					InteractivePrompt: true,
					EntersInteractive: true,
				},
			},
		},
	}
}

func finished(t *testing.T, run *Run) {
	t.Helper()
	select {
	case <-run.Done():
	default:
		t.Fatal("playback did not finish")
	}
}

func TestPlayerPlainGolden(t *testing.T) {
	clock := clocktest.New()
	var buf bytes.Buffer
	p := &Player{Out: &buf, Clock: clock}

	run, err := p.Begin(goldenDemo())
	require.NoError(t, err)
	clock.RunUntilIdle(10000)
	finished(t, run)
	require.NoError(t, run.Err())

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "play_plain", buf.Bytes())

	assert.Equal(t, ansi.PlainTranscript(run.Snapshot().History), buf.String())
}

func TestPlayerTypesIncrementally(t *testing.T) {
	clock := clocktest.New()
	var buf bytes.Buffer
	p := &Player{Out: &buf, Clock: clock}

	_, err := p.Begin(goldenDemo())
	require.NoError(t, err)

	seen := []string{buf.String()}
	for clock.Step() {
		if s := buf.String(); s != seen[len(seen)-1] {
			seen = append(seen, s)
		}
	}

	// every write extends what was already printed
	for i := 1; i < len(seen); i++ {
		assert.True(t, strings.HasPrefix(seen[i], seen[i-1]), "write %d rewrote earlier output", i)
	}
	assert.Contains(t, seen, "$ echo")
	assert.Contains(t, seen, "$ echo ready\nready\n\nneurondb=# SELECT")
}

func TestPlayerColor(t *testing.T) {
	clock := clocktest.New()
	var buf bytes.Buffer
	p := &Player{
		Out:    &buf,
		Clock:  clock,
		Render: ansi.NewRenderer(theme.NewMidnightTheme()).SGR,
	}

	run, err := p.Begin(goldenDemo())
	require.NoError(t, err)
	clock.RunUntilIdle(10000)
	finished(t, run)

	out := buf.String()
	assert.Contains(t, out, "\x1b[38;2;")
	assert.Contains(t, out, "ready\x1b[0m")
	assert.NotContains(t, out, ansi.MarkerGreen)
}

func TestPlayerStop(t *testing.T) {
	clock := clocktest.New()
	var buf bytes.Buffer
	p := &Player{Out: &buf, Clock: clock}

	run, err := p.Begin(goldenDemo())
	require.NoError(t, err)
	clock.Advance(120 * time.Millisecond)
	run.Stop()
	finished(t, run)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "$ e"), out)
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.NotContains(t, out, "ready\n")

	// nothing more is written after the stop
	clock.RunUntilIdle(10000)
	clock.FireStopped()
	assert.Equal(t, out, buf.String())
	assert.Equal(t, playback.StatusStopped, run.Snapshot().Status)
}

func TestPlayerEmptyScript(t *testing.T) {
	var buf bytes.Buffer
	p := &Player{Out: &buf, Clock: clocktest.New()}

	run, err := p.Begin(catalog.Demo{Key: catalog.Key{Category: "empty"}})
	require.NoError(t, err)
	finished(t, run)
	assert.Empty(t, buf.String())
}

func TestPlayerPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	p := &Player{Out: &buf}
	err := p.Play(ctx, goldenDemo())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayerPlayRealClock(t *testing.T) {
	var buf bytes.Buffer
	p := &Player{
		Out: &buf,
		Timings: playback.Timings{
			TypeInterval:   time.Millisecond,
			CommandDelay:   time.Millisecond,
			OutputInterval: time.Millisecond,
			BetweenSteps:   time.Millisecond,
			CharsPerTick:   4,
		},
		Speed: playback.Speed3x,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Play(ctx, goldenDemo()))
	assert.True(t, strings.HasSuffix(buf.String(), "(1 row)\n"))
}
