package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"neurondemo/internal/ansi"
	"neurondemo/internal/catalog"
	"neurondemo/internal/playback"
)

// Player replays a demo to a writer as it happens: the prompt and command
// grow with every typing tick and output lines appear as they are revealed.
type Player struct {
	Out     io.Writer
	Render  func(line string) string // output line renderer, markers stripped when nil
	Clock   playback.Clock
	Timings playback.Timings
	Speed   playback.Speed
}

// Run is one headless playback session
type Run struct {
	sched *playback.Scheduler
	done  chan struct{}
	once  sync.Once

	mu  sync.Mutex
	err error
}

// Done is closed when the session completes or stops
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Stop cancels the session
func (r *Run) Stop() {
	r.sched.Stop()
}

// Err returns the first write error, if any
func (r *Run) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Snapshot returns the scheduler state
func (r *Run) Snapshot() playback.Snapshot {
	return r.sched.Snapshot()
}

func (r *Run) finish() {
	r.once.Do(func() { close(r.done) })
}

// Begin starts playing demo and returns immediately
func (p *Player) Begin(demo catalog.Demo) (*Run, error) {
	render := p.Render
	if render == nil {
		render = ansi.StripMarkers
	}

	sched := playback.NewScheduler(playback.Options{
		Clock:   p.Clock,
		Timings: p.Timings,
		Speed:   p.Speed,
	})
	run := &Run{sched: sched, done: make(chan struct{})}

	w := &lineWriter{out: p.Out, run: run, render: render, step: -1}
	sched.Bus().SubscribeAll(w.handle)

	sched.SelectScript(demo.Script)
	if demo.Script.Len() == 0 {
		run.finish()
		return run, nil
	}
	if err := sched.Start(); err != nil {
		return nil, err
	}
	return run, nil
}

// Play runs demo to completion or until ctx is cancelled
func (p *Player) Play(ctx context.Context, demo catalog.Demo) error {
	run, err := p.Begin(demo)
	if err != nil {
		return err
	}
	select {
	case <-run.Done():
	case <-ctx.Done():
		run.Stop()
		return ctx.Err()
	}
	return run.Err()
}

// lineWriter turns scheduler events into incremental terminal output. It
// runs on the scheduler's event path, one event at a time.
type lineWriter struct {
	out    io.Writer
	run    *Run
	render func(string) string

	started bool
	step    int
	typed   int // bytes of the command already written
	lines   int // output lines already written
}

func (w *lineWriter) handle(ev playback.Event) {
	snap := ev.Snapshot
	switch ev.Type {
	case playback.EventStatusChanged:
		switch snap.Status {
		case playback.StatusTypingCommand:
			if snap.StepIndex != w.step {
				w.started = true
				w.step = snap.StepIndex
				w.typed = 0
				w.lines = 0
				w.write(playback.Prompt(snap.Current.Interactive) + " ")
			}
		case playback.StatusPausedBetweenSteps:
			w.write("\n")
		case playback.StatusStopped:
			w.write("\n")
			w.run.finish()
		case playback.StatusIdle:
			if w.started {
				w.run.finish()
			}
		}

	case playback.EventCommandTyped:
		text := snap.Current.Text
		if len(text) > w.typed {
			w.write(text[w.typed:])
			w.typed = len(text)
		}

	case playback.EventHistoryAppended:
		// the whole command is in history now, even if the last tick
		// carried more than one character
		if rest := ev.Entry.Command; len(rest) > w.typed {
			w.write(rest[w.typed:])
		}
		w.typed = len(ev.Entry.Command)
		w.write("\n")

	case playback.EventOutputRevealed:
		for _, line := range ev.Entry.Output[w.lines:] {
			w.write(w.render(line) + "\n")
		}
		w.lines = len(ev.Entry.Output)
	}
}

func (w *lineWriter) write(s string) {
	if _, err := io.WriteString(w.out, s); err != nil {
		w.run.mu.Lock()
		if w.run.err == nil {
			w.run.err = fmt.Errorf("write playback output: %w", err)
		}
		w.run.mu.Unlock()
	}
}

// indent prefixes every non-empty line
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
