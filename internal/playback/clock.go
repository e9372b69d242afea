package playback

import "time"

// Timer is a scheduled callback that can be cancelled
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or was stopped.
	Stop() bool
}

// TimerSource schedules callbacks after a delay
type TimerSource interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Clock is a TimerSource that can also tell the time
type Clock interface {
	TimerSource
	Now() time.Time
}

type realClock struct{}

// RealClock returns a Clock backed by the time package
func RealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
