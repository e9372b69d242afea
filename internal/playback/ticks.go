package playback

import "time"

// CancelFunc stops a running simulation. It is safe to call more than once
// and after the simulation completed.
type CancelFunc func()

// tickRun fires tick(1..total) at a fixed interval and then complete.
// A run is not safe for concurrent use: its callbacks and cancel must be
// serialized by whoever owns the TimerSource (the Scheduler does this under
// its lock, the fake clock by firing synchronously).
type tickRun struct {
	src      TimerSource
	interval time.Duration
	total    int
	done     int
	timer    Timer

	cancelled bool
	finished  bool

	tick     func(n int)
	complete func()
}

func (r *tickRun) start() CancelFunc {
	if r.total == 0 {
		// nothing to reveal, complete on the next turn of the timer source
		r.timer = r.src.AfterFunc(0, r.finish)
		return r.cancel
	}
	r.timer = r.src.AfterFunc(r.interval, r.fire)
	return r.cancel
}

func (r *tickRun) fire() {
	if r.cancelled || r.finished {
		return
	}
	r.done++
	r.tick(r.done)
	if r.cancelled {
		return
	}
	if r.done >= r.total {
		r.finish()
		return
	}
	r.timer = r.src.AfterFunc(r.interval, r.fire)
}

func (r *tickRun) finish() {
	if r.cancelled || r.finished {
		return
	}
	r.finished = true
	r.timer = nil
	r.complete()
}

func (r *tickRun) cancel() {
	if r.cancelled || r.finished {
		return
	}
	r.cancelled = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// TypeCommand reveals text charsPerTick runes per tick. onTick receives the
// prefix revealed so far, the last tick carries the full text. onComplete
// runs exactly once after the last tick unless the returned CancelFunc is
// called first. Empty text produces no ticks and completes on a zero delay.
func TypeCommand(src TimerSource, text string, charsPerTick int, interval time.Duration, onTick func(string), onComplete func()) CancelFunc {
	if charsPerTick < 1 {
		charsPerTick = 1
	}
	runes := []rune(text)
	total := (len(runes) + charsPerTick - 1) / charsPerTick

	run := &tickRun{
		src:      src,
		interval: interval,
		total:    total,
		tick: func(n int) {
			end := n * charsPerTick
			if end > len(runes) {
				end = len(runes)
			}
			onTick(string(runes[:end]))
		},
		complete: onComplete,
	}
	return run.start()
}

// RevealLines reveals one line per tick. onTick receives the growing prefix
// of lines. The prefix is capacity-limited so appending to it never writes
// into lines.
func RevealLines(src TimerSource, lines []string, interval time.Duration, onTick func([]string), onComplete func()) CancelFunc {
	run := &tickRun{
		src:      src,
		interval: interval,
		total:    len(lines),
		tick: func(n int) {
			onTick(lines[:n:n])
		},
		complete: onComplete,
	}
	return run.start()
}
