package clocktest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceFiresInDeadlineOrder(t *testing.T) {
	c := New()
	var order []string

	c.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	fired := c.Advance(20 * time.Millisecond)
	assert.Equal(t, 2, fired)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, Epoch.Add(20*time.Millisecond), c.Now())

	c.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Zero(t, c.Pending())
}

func TestAdvanceRunsNestedTimersThatComeDue(t *testing.T) {
	c := New()
	count := 0
	var tick func()
	tick = func() {
		count++
		c.AfterFunc(10*time.Millisecond, tick)
	}
	c.AfterFunc(10*time.Millisecond, tick)

	c.Advance(55 * time.Millisecond)
	assert.Equal(t, 5, count)
	assert.Equal(t, 1, c.Pending())
}

func TestStopPreventsFiringUntilFireStopped(t *testing.T) {
	c := New()
	ran := false
	tm := c.AfterFunc(time.Second, func() { ran = true })

	require.True(t, tm.Stop())
	assert.False(t, tm.Stop(), "second stop reports false")

	c.Advance(2 * time.Second)
	assert.False(t, ran)

	assert.Equal(t, 1, c.FireStopped())
	assert.True(t, ran, "late delivery runs the stopped callback")
	assert.Equal(t, 0, c.FireStopped())
}

func TestRunUntilIdleReportsElapsed(t *testing.T) {
	c := New()
	c.AfterFunc(100*time.Millisecond, func() {
		c.AfterFunc(250*time.Millisecond, func() {})
	})

	elapsed := c.RunUntilIdle(100)
	assert.Equal(t, 350*time.Millisecond, elapsed)
	assert.False(t, c.Step())
}
