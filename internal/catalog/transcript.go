package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"neurondemo/internal/ansi"
	"neurondemo/internal/playback"
)

// TranscriptRange limits ParseTranscript to a 1-based, inclusive line range.
// End < 1 reads to the end of the input.
type TranscriptRange struct {
	Start int
	End   int
}

// ParseTranscript reads a recorded session back into steps. A line that
// starts with a prompt ("$ " or "neurondb=# ") begins a step; the lines up
// to the next prompt are its output, minus the blank separator line.
// Escape sequences other than the color markers are dropped.
func ParseTranscript(r io.Reader, rng TranscriptRange) ([]playback.Step, error) {
	var (
		steps    []playback.Step
		current  *playback.Step
		blanks   int
		lineNo   int
		stripper = ansi.NewStreamingStripper()
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		if lineNo < rng.Start {
			continue
		}
		if rng.End > 0 && lineNo > rng.End {
			break
		}

		line := stripper.KeepMarkers(strings.TrimRight(scanner.Text(), "\r"))
		command, interactive, isPrompt := splitPrompt(ansi.StripMarkers(line))

		switch {
		case isPrompt:
			if current != nil {
				// one blank line separates entries
				if blanks > 0 {
					blanks--
				}
				for ; blanks > 0; blanks-- {
					current.Output = append(current.Output, "")
				}
				steps = append(steps, *current)
			}
			blanks = 0
			current = &playback.Step{Command: command, InteractivePrompt: interactive}

		case current == nil:
			if strings.TrimSpace(line) != "" {
				return nil, fmt.Errorf("%w: line %d: output before the first command", ErrInvalid, lineNo)
			}

		case line == "":
			blanks++

		default:
			for ; blanks > 0; blanks-- {
				current.Output = append(current.Output, "")
			}
			current.Output = append(current.Output, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("%w: transcript has no commands", ErrInvalid)
	}
	for ; blanks > 0; blanks-- {
		current.Output = append(current.Output, "")
	}
	steps = append(steps, *current)

	markModeChanges(steps)
	return steps, nil
}

// splitPrompt reports the command of a prompt line
func splitPrompt(line string) (command string, interactive, ok bool) {
	for _, interactive := range []bool{true, false} {
		prompt := playback.Prompt(interactive)
		if line == prompt {
			return "", interactive, true
		}
		if rest, found := strings.CutPrefix(line, prompt+" "); found {
			return rest, interactive, true
		}
	}
	return "", false, false
}

// markModeChanges sets the enter/exit flags so the live prompt follows the
// recorded one. The step before the first interactive step enters the
// session, the way "psql" does.
func markModeChanges(steps []playback.Step) {
	if len(steps) > 0 && steps[0].InteractivePrompt {
		steps[0].EntersInteractive = true
	}
	for i := 0; i+1 < len(steps); i++ {
		switch {
		case !steps[i].InteractivePrompt && steps[i+1].InteractivePrompt:
			steps[i].EntersInteractive = true
		case steps[i].InteractivePrompt && !steps[i+1].InteractivePrompt:
			steps[i].ExitsInteractive = true
		}
	}
}
