package history

import "time"

// Clock provides time-related operations for testability.
// Use RealClock in production and a mock clock in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc waits for the duration to elapse and then calls f
	// in its own goroutine. The returned Timer can be stopped.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer represents a scheduled call that can be cancelled.
type Timer interface {
	// Stop prevents the timer from firing. Returns true if the call stops
	// the timer, false if the timer has already fired or been stopped.
	Stop() bool
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// AfterFunc schedules f on a time.Timer.
func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return &realTimer{timer: time.AfterFunc(d, f)}
}

// realTimer wraps time.Timer to implement the Timer interface.
type realTimer struct {
	timer *time.Timer
}

func (t *realTimer) Stop() bool { return t.timer.Stop() }
