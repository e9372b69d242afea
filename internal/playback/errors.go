package playback

import "errors"

var (
	// ErrAlreadyRunning is returned by Start while a session is active.
	ErrAlreadyRunning = errors.New("playback already running")

	// ErrRunning is returned by SetSpeed while a session is active.
	ErrRunning = errors.New("speed can only change while idle or stopped")

	// ErrInvalidSpeed is returned for multipliers outside the presets.
	ErrInvalidSpeed = errors.New("unsupported speed multiplier")
)
