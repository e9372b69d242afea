// Package clocktest provides a manually advanced playback.Clock for tests.
package clocktest

import (
	"sync"
	"time"

	"neurondemo/internal/playback"
)

// Epoch is the initial time of every fake clock
var Epoch = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

// Clock fires callbacks synchronously from Advance, in deadline order
type Clock struct {
	mu      sync.Mutex
	now     time.Time
	seq     uint64
	pending []*timer
	stopped []*timer
}

type timer struct {
	c       *Clock
	when    time.Time
	seq     uint64
	f       func()
	fired   bool
	stopped bool
}

// New returns a clock set to Epoch
func New() *Clock {
	return &Clock{now: Epoch}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) AfterFunc(d time.Duration, f func()) playback.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	c.seq++
	t := &timer{c: c, when: c.now.Add(d), seq: c.seq, f: f}
	c.pending = append(c.pending, t)
	return t
}

func (t *timer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	t.c.remove(t)
	t.c.stopped = append(t.c.stopped, t)
	return true
}

func (c *Clock) remove(t *timer) {
	for i, p := range c.pending {
		if p == t {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// next pops the earliest timer due at or before deadline
func (c *Clock) next(deadline time.Time) *timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	var best *timer
	for _, t := range c.pending {
		if t.when.After(deadline) {
			continue
		}
		if best == nil || t.when.Before(best.when) || (t.when.Equal(best.when) && t.seq < best.seq) {
			best = t
		}
	}
	if best == nil {
		return nil
	}
	c.remove(best)
	best.fired = true
	if best.when.After(c.now) {
		c.now = best.when
	}
	return best
}

// Advance moves the clock forward by d, firing every timer that comes due,
// including timers scheduled by the callbacks themselves. It returns the
// number of callbacks run.
func (c *Clock) Advance(d time.Duration) int {
	c.mu.Lock()
	deadline := c.now.Add(d)
	c.mu.Unlock()

	fired := 0
	for {
		t := c.next(deadline)
		if t == nil {
			break
		}
		t.f()
		fired++
	}

	c.mu.Lock()
	if deadline.After(c.now) {
		c.now = deadline
	}
	c.mu.Unlock()
	return fired
}

// RunUntilIdle fires timers in order until none are pending or limit
// callbacks ran. It returns the virtual time that passed.
func (c *Clock) RunUntilIdle(limit int) time.Duration {
	start := c.Now()
	for i := 0; i < limit; i++ {
		if !c.Step() {
			break
		}
	}
	return c.Now().Sub(start)
}

// Pending returns the number of scheduled timers
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// FireStopped runs the callbacks of timers that were stopped, as a timer
// implementation that delivers late would. It returns how many ran.
func (c *Clock) FireStopped() int {
	c.mu.Lock()
	stale := c.stopped
	c.stopped = nil
	c.mu.Unlock()

	for _, t := range stale {
		t.f()
	}
	return len(stale)
}

// Step fires the earliest pending timer, advancing the clock to its
// deadline. It reports whether a timer ran.
func (c *Clock) Step() bool {
	t := c.next(time.Unix(1<<40, 0))
	if t == nil {
		return false
	}
	t.f()
	return true
}
