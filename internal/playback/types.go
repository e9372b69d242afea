package playback

import (
	"fmt"
	"time"
)

// Step is one command and its output. Steps come from the catalog and are
// never modified by the engine.
type Step struct {
	Command string   `yaml:"command"`
	Output  []string `yaml:"output"`

	// InteractivePrompt renders the step with the interactive-session prompt
	// instead of the shell prompt. Cosmetic only.
	InteractivePrompt bool `yaml:"interactive,omitempty"`

	// EntersInteractive and ExitsInteractive switch the prompt used by the
	// current line for this and subsequent steps.
	EntersInteractive bool `yaml:"enters_interactive,omitempty"`
	ExitsInteractive  bool `yaml:"exits_interactive,omitempty"`
}

// Script is an ordered list of steps for one demo category
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Len returns the number of steps
func (s Script) Len() int {
	return len(s.Steps)
}

// Status is the scheduler state
type Status int

const (
	StatusIdle Status = iota
	StatusTypingCommand
	StatusRevealingOutput
	StatusPausedBetweenSteps
	StatusStopped
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusTypingCommand:
		return "typing"
	case StatusRevealingOutput:
		return "revealing"
	case StatusPausedBetweenSteps:
		return "paused"
	case StatusStopped:
		return "stopped"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Active reports whether a session is running in this state.
func (s Status) Active() bool {
	return s != StatusIdle && s != StatusStopped
}

// Speed is a playback rate multiplier
type Speed int

const (
	Speed1x Speed = 1
	Speed2x Speed = 2
	Speed3x Speed = 3
)

// Speeds lists the supported presets in display order
var Speeds = []Speed{Speed1x, Speed2x, Speed3x}

// Valid reports whether s is one of the presets
func (s Speed) Valid() bool {
	for _, preset := range Speeds {
		if s == preset {
			return true
		}
	}
	return false
}

func (s Speed) String() string {
	return fmt.Sprintf("%d×", int(s))
}

// Timings are the base delays at 1× speed.
type Timings struct {
	TypeInterval   time.Duration // per typing tick
	CommandDelay   time.Duration // after a command is typed, before its first output line
	OutputInterval time.Duration // per output line
	BetweenSteps   time.Duration // after the last output line of a step
	CharsPerTick   int
}

// DefaultTimings returns the timings used by the web demo
func DefaultTimings() Timings {
	return Timings{
		TypeInterval:   50 * time.Millisecond,
		CommandDelay:   1000 * time.Millisecond,
		OutputInterval: 200 * time.Millisecond,
		BetweenSteps:   1500 * time.Millisecond,
		CharsPerTick:   1,
	}
}

// Scaled divides every delay by the speed multiplier.
func (t Timings) Scaled(speed Speed) Timings {
	if !speed.Valid() {
		speed = Speed1x
	}
	div := time.Duration(speed)
	scaled := Timings{
		TypeInterval:   t.TypeInterval / div,
		CommandDelay:   t.CommandDelay / div,
		OutputInterval: t.OutputInterval / div,
		BetweenSteps:   t.BetweenSteps / div,
		CharsPerTick:   t.CharsPerTick,
	}
	if scaled.CharsPerTick < 1 {
		scaled.CharsPerTick = 1
	}
	return scaled
}

// HistoryEntry is one executed (or partially executed) step as shown to the user
type HistoryEntry struct {
	Command           string
	Output            []string
	InteractivePrompt bool
	Timestamp         time.Time
}

// CurrentLine is the "currently typing" projection
type CurrentLine struct {
	Text        string // revealed command prefix
	Typing      bool
	Interactive bool // prompt glyph for the line
}

// Snapshot is a copy of the observable session state
type Snapshot struct {
	Status           Status
	StepIndex        int
	StepCount        int
	CommandPrefixLen int
	OutputLineCount  int
	Speed            Speed
	Current          CurrentLine
	History          []HistoryEntry
	ActiveTimers     int
	Generation       uint64
	SessionID        string

	// Revision increases on every state mutation
	Revision uint64
}
