package timer

import (
	"time"
)

// Handle is a scheduled callback that can be cancelled.
type Handle interface {
	// Stop prevents the callback from running. It reports false if the
	// callback already ran or is already running.
	Stop() bool
}

// Clock schedules callbacks and reports the current time.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Handle
}

type realClock struct{}

// Real returns a Clock backed by the runtime timers. Callbacks run on their
// own goroutine.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Handle {
	return time.AfterFunc(d, f)
}
