package playback_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurondemo/internal/playback"
	"neurondemo/internal/playback/clocktest"
)

const tick = 50 * time.Millisecond

func TestTypeCommandOneCharacterPerTick(t *testing.T) {
	clock := clocktest.New()
	var ticks []string
	completed := 0

	playback.TypeCommand(clock, "SELECT 1;", 1, tick,
		func(prefix string) { ticks = append(ticks, prefix) },
		func() { completed++ })

	for i := 0; i < 9; i++ {
		require.Equal(t, 1, clock.Advance(tick), "tick %d", i+1)
	}

	require.Len(t, ticks, 9)
	assert.Equal(t, "S", ticks[0])
	assert.Equal(t, "SELECT 1;", ticks[8])
	assert.Equal(t, 1, completed)
	assert.Zero(t, clock.Pending())
}

func TestTypeCommandChunks(t *testing.T) {
	clock := clocktest.New()
	var ticks []string

	playback.TypeCommand(clock, "abcdefghij", 4, tick,
		func(prefix string) { ticks = append(ticks, prefix) },
		func() {})
	clock.RunUntilIdle(100)

	assert.Equal(t, []string{"abcd", "abcdefgh", "abcdefghij"}, ticks)
}

func TestTypeCommandCountsRunesNotBytes(t *testing.T) {
	clock := clocktest.New()
	var ticks []string

	playback.TypeCommand(clock, "→✓", 1, tick,
		func(prefix string) { ticks = append(ticks, prefix) },
		func() {})
	clock.RunUntilIdle(100)

	assert.Equal(t, []string{"→", "→✓"}, ticks)
}

func TestTypeCommandEmptyCompletesWithoutTicks(t *testing.T) {
	clock := clocktest.New()
	ticks := 0
	completed := 0

	playback.TypeCommand(clock, "", 1, tick,
		func(string) { ticks++ },
		func() { completed++ })

	clock.Advance(0)
	assert.Zero(t, ticks)
	assert.Equal(t, 1, completed)
}

func TestTypeCommandCancel(t *testing.T) {
	clock := clocktest.New()
	var ticks []string
	completed := 0

	cancel := playback.TypeCommand(clock, "SELECT 1;", 1, tick,
		func(prefix string) { ticks = append(ticks, prefix) },
		func() { completed++ })

	clock.Advance(3 * tick)
	cancel()
	cancel()
	clock.RunUntilIdle(100)
	clock.FireStopped()

	assert.Equal(t, []string{"S", "SE", "SEL"}, ticks)
	assert.Zero(t, completed)
}

func TestTypeCommandCancelEmptyBeforeCompletion(t *testing.T) {
	clock := clocktest.New()
	completed := 0

	cancel := playback.TypeCommand(clock, "", 1, tick, func(string) {}, func() { completed++ })
	cancel()
	clock.RunUntilIdle(10)

	assert.Zero(t, completed)
}

func TestRevealLinesOneLinePerTick(t *testing.T) {
	clock := clocktest.New()
	lines := []string{"one", "two", "three"}
	var ticks [][]string
	completed := 0

	playback.RevealLines(clock, lines, 200*time.Millisecond,
		func(prefix []string) { ticks = append(ticks, prefix) },
		func() { completed++ })

	clock.Advance(200 * time.Millisecond)
	require.Len(t, ticks, 1)
	assert.Equal(t, []string{"one"}, ticks[0])

	clock.RunUntilIdle(10)
	require.Len(t, ticks, 3)
	assert.Equal(t, lines, ticks[2])
	assert.Equal(t, 1, completed)
}

func TestRevealLinesPrefixDoesNotAliasSource(t *testing.T) {
	clock := clocktest.New()
	lines := []string{"one", "two", "three"}
	var first []string

	playback.RevealLines(clock, lines, tick,
		func(prefix []string) {
			if first == nil {
				first = prefix
			}
		},
		func() {})
	clock.RunUntilIdle(10)

	_ = append(first, "clobbered")
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestRevealLinesEmptyAndCancel(t *testing.T) {
	clock := clocktest.New()
	completed := 0
	playback.RevealLines(clock, nil, tick, func([]string) { t.Fatal("unexpected tick") }, func() { completed++ })
	clock.Advance(0)
	assert.Equal(t, 1, completed)

	ticks := 0
	cancel := playback.RevealLines(clock, []string{"a", "b"}, tick, func([]string) { ticks++ }, func() { completed++ })
	clock.Advance(tick)
	cancel()
	clock.RunUntilIdle(10)
	assert.Equal(t, 1, ticks)
	assert.Equal(t, 1, completed)
}
