package playback

import (
	"sync"
	"time"
)

// timerSet tracks the outstanding timers of the live session. Every
// callback captures the generation it was scheduled under and is dropped
// if the generation moved on or its handle was cancelled, even when the
// underlying timer could not be stopped in time.
//
// All methods except the fired callbacks expect mu to be held by the caller.
type timerSet struct {
	mu         sync.Locker
	clock      Clock
	generation uint64
	nextID     uint64
	active     map[uint64]Timer
}

func newTimerSet(mu sync.Locker, clock Clock) *timerSet {
	return &timerSet{
		mu:     mu,
		clock:  clock,
		active: make(map[uint64]Timer),
	}
}

// source returns a TimerSource bound to generation gen
func (ts *timerSet) source(gen uint64) TimerSource {
	return boundSource{ts: ts, gen: gen}
}

func (ts *timerSet) schedule(gen uint64, d time.Duration, f func()) Timer {
	if gen != ts.generation {
		return deadTimer{}
	}
	ts.nextID++
	id := ts.nextID
	ts.active[id] = ts.clock.AfterFunc(d, func() {
		ts.mu.Lock()
		defer ts.mu.Unlock()
		if gen != ts.generation {
			return
		}
		if _, ok := ts.active[id]; !ok {
			return
		}
		delete(ts.active, id)
		f()
	})
	return &timerHandle{ts: ts, id: id}
}

// cancelAll stops every outstanding timer, clears the set and invalidates
// the current generation. It returns how many timers were outstanding.
func (ts *timerSet) cancelAll() int {
	n := len(ts.active)
	for id, t := range ts.active {
		t.Stop()
		delete(ts.active, id)
	}
	ts.generation++
	return n
}

func (ts *timerSet) len() int {
	return len(ts.active)
}

type boundSource struct {
	ts  *timerSet
	gen uint64
}

func (b boundSource) AfterFunc(d time.Duration, f func()) Timer {
	return b.ts.schedule(b.gen, d, f)
}

type timerHandle struct {
	ts *timerSet
	id uint64
}

func (h *timerHandle) Stop() bool {
	t, ok := h.ts.active[h.id]
	if !ok {
		return false
	}
	delete(h.ts.active, h.id)
	return t.Stop()
}

type deadTimer struct{}

func (deadTimer) Stop() bool { return false }
