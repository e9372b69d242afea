package playback

import (
	"slices"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"neurondemo/internal/log"
)

// Options configure a Scheduler. Zero values fall back to the real clock,
// DefaultTimings, 1× speed and a private event bus.
type Options struct {
	Clock   Clock
	Timings Timings
	Speed   Speed
	Bus     *EventBus
}

// Scheduler drives a script through typing, output reveal and the pause
// between steps. It owns the playback session exclusively; all state changes
// happen under its lock, either from a control call or from a timer
// callback of the live session.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	timings Timings
	bus     *EventBus
	timers  *timerSet

	script Script
	speed  Speed

	// live session
	sessionID   string
	run         Timings // timings scaled for the session speed
	status      Status
	stepIndex   int
	prefixLen   int
	lineCount   int
	current     CurrentLine
	interactive bool
	history     []HistoryEntry
	cancelRun   CancelFunc
	revision    uint64
}

// NewScheduler creates an idle scheduler with an empty script
func NewScheduler(opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Timings == (Timings{}) {
		opts.Timings = DefaultTimings()
	}
	if !opts.Speed.Valid() {
		opts.Speed = Speed1x
	}
	if opts.Bus == nil {
		opts.Bus = NewEventBus()
	}

	s := &Scheduler{
		clock:     opts.Clock,
		timings:   opts.Timings,
		bus:       opts.Bus,
		speed:     opts.Speed,
		status:    StatusIdle,
		stepIndex: -1,
	}
	s.timers = newTimerSet(&s.mu, opts.Clock)
	return s
}

// Bus returns the event bus the scheduler publishes to
func (s *Scheduler) Bus() *EventBus {
	return s.bus
}

// Start begins a new session from step 0. It returns ErrAlreadyRunning if a
// session is active. Starting an empty script is a no-op.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Active() {
		log.Debug("start ignored, session active", "session", s.sessionID, "status", s.status.String())
		return ErrAlreadyRunning
	}
	if len(s.script.Steps) == 0 {
		log.Debug("start ignored, empty script", "script", s.script.Name)
		return nil
	}

	// anything left from a previous session is invalidated before the new
	// generation schedules its first timer
	s.cancelLocked()

	s.sessionID = uuid.NewString()
	s.run = s.timings.Scaled(s.speed)
	s.interactive = false
	if len(s.history) > 0 {
		s.history = nil
		s.emit(Event{Type: EventHistoryCleared})
	}

	log.Info("playback started", "session", s.sessionID, "script", s.script.Name,
		"steps", len(s.script.Steps), "speed", int(s.speed), "generation", s.timers.generation)

	s.beginStep(0)
	return nil
}

// Stop cancels every pending timer and freezes the visible state. Calling it
// while idle or stopped does nothing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.status.Active() {
		return
	}
	cancelled := s.cancelLocked()
	log.Info("playback stopped", "session", s.sessionID, "step", s.stepIndex, "cancelled_timers", cancelled)
	s.setStatus(StatusStopped)
}

// Reset cancels every pending timer and clears the session back to idle
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Close releases the scheduler when its view goes away. It takes the same
// path as Stop.
func (s *Scheduler) Close() {
	s.Stop()
}

// SetSpeed changes the playback multiplier. Only allowed while idle or
// stopped.
func (s *Scheduler) SetSpeed(speed Speed) error {
	if !speed.Valid() {
		return ErrInvalidSpeed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status.Active() {
		return ErrRunning
	}
	if s.speed == speed {
		return nil
	}
	s.speed = speed
	s.revision++
	s.emit(Event{Type: EventStatusChanged})
	return nil
}

// SelectScript resets the scheduler and loads script
func (s *Scheduler) SelectScript(script Script) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	s.script = script
	s.revision++
	log.Debug("script selected", "script", script.Name, "steps", len(script.Steps))
	s.emit(Event{Type: EventStatusChanged})
}

// Script returns the loaded script
func (s *Scheduler) Script() Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.script
}

// Status returns the current state
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Speed returns the configured multiplier
func (s *Scheduler) Speed() Speed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speed
}

// Snapshot returns a copy of the observable state
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Scheduler) snapshotLocked() Snapshot {
	return Snapshot{
		Status:           s.status,
		StepIndex:        s.stepIndex,
		StepCount:        len(s.script.Steps),
		CommandPrefixLen: s.prefixLen,
		OutputLineCount:  s.lineCount,
		Speed:            s.speed,
		Current:          s.current,
		History:          slices.Clone(s.history),
		ActiveTimers:     s.timers.len(),
		Generation:       s.timers.generation,
		SessionID:        s.sessionID,
		Revision:         s.revision,
	}
}

func (s *Scheduler) emit(ev Event) {
	ev.Snapshot = s.snapshotLocked()
	s.bus.Fire(ev)
}

func (s *Scheduler) setStatus(status Status) {
	if s.status == status {
		return
	}
	s.status = status
	s.revision++
	s.emit(Event{Type: EventStatusChanged})
}

func (s *Scheduler) cancelLocked() int {
	if s.cancelRun != nil {
		s.cancelRun()
		s.cancelRun = nil
	}
	return s.timers.cancelAll()
}

func (s *Scheduler) resetLocked() {
	cancelled := s.cancelLocked()
	if cancelled > 0 || s.status != StatusIdle {
		log.Info("playback reset", "session", s.sessionID, "status", s.status.String(), "cancelled_timers", cancelled)
	}

	hadHistory := len(s.history) > 0
	changed := hadHistory || s.status != StatusIdle || s.stepIndex != -1 ||
		s.current != (CurrentLine{}) || s.interactive

	s.history = nil
	s.stepIndex = -1
	s.prefixLen = 0
	s.lineCount = 0
	s.current = CurrentLine{}
	s.interactive = false
	s.sessionID = ""

	if !changed {
		return
	}
	s.revision++
	if hadHistory {
		s.emit(Event{Type: EventHistoryCleared})
	}
	if s.status != StatusIdle {
		s.setStatus(StatusIdle)
	} else {
		s.emit(Event{Type: EventStatusChanged})
	}
}

func (s *Scheduler) source() TimerSource {
	return s.timers.source(s.timers.generation)
}

// beginStep types the command of step i
func (s *Scheduler) beginStep(i int) {
	step := s.script.Steps[i]
	if step.EntersInteractive {
		s.interactive = true
	}

	s.stepIndex = i
	s.prefixLen = 0
	s.lineCount = 0
	s.current = CurrentLine{Typing: true, Interactive: s.interactive}
	s.revision++
	if s.status == StatusTypingCommand {
		s.emit(Event{Type: EventStatusChanged})
	} else {
		s.setStatus(StatusTypingCommand)
	}

	s.cancelRun = TypeCommand(s.source(), step.Command, s.run.CharsPerTick, s.run.TypeInterval,
		func(prefix string) {
			s.prefixLen = utf8.RuneCountInString(prefix)
			s.current.Text = prefix
			s.revision++
			s.emit(Event{Type: EventCommandTyped})
		},
		func() {
			s.commandTyped(i)
		})
}

// commandTyped moves the typed command into history and waits for the
// command delay before revealing output
func (s *Scheduler) commandTyped(i int) {
	step := s.script.Steps[i]

	entry := HistoryEntry{
		Command:           step.Command,
		InteractivePrompt: step.InteractivePrompt,
		Timestamp:         s.clock.Now(),
	}
	s.history = append(s.history, entry)
	s.current = CurrentLine{Interactive: s.interactive}
	s.cancelRun = nil
	s.revision++
	s.emit(Event{Type: EventHistoryAppended, Index: len(s.history) - 1, Entry: entry})
	s.setStatus(StatusRevealingOutput)

	s.source().AfterFunc(s.run.CommandDelay, func() {
		s.revealOutput(i)
	})
}

func (s *Scheduler) revealOutput(i int) {
	step := s.script.Steps[i]
	index := len(s.history) - 1

	s.cancelRun = RevealLines(s.source(), step.Output, s.run.OutputInterval,
		func(lines []string) {
			s.lineCount = len(lines)
			s.history[index].Output = lines
			s.revision++
			s.emit(Event{Type: EventOutputRevealed, Index: index, Entry: s.history[index]})
		},
		func() {
			s.stepFinished(i)
		})
}

func (s *Scheduler) stepFinished(i int) {
	s.cancelRun = nil
	if s.script.Steps[i].ExitsInteractive {
		s.interactive = false
		s.current.Interactive = false
		s.revision++
	}

	if i == len(s.script.Steps)-1 {
		s.finish()
		return
	}

	s.setStatus(StatusPausedBetweenSteps)
	s.source().AfterFunc(s.run.BetweenSteps, func() {
		s.beginStep(i + 1)
	})
}

// finish ends a session that ran to completion
func (s *Scheduler) finish() {
	s.timers.cancelAll()
	log.Info("playback complete", "session", s.sessionID, "entries", len(s.history))

	s.stepIndex = -1
	s.prefixLen = 0
	s.lineCount = 0
	s.revision++
	s.setStatus(StatusIdle)
}
