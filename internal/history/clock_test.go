package history

import (
	"sync"
	"time"
)

// mockClock implements Clock for deterministic testing. Advance moves time
// forward and runs the callbacks of expired timers synchronously.
type mockClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*mockTimer
}

func newMockClock() *mockClock {
	return &mockClock{
		now: time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC),
	}
}

func (c *mockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *mockClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTimer{
		deadline: c.now.Add(d),
		f:        f,
	}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and fires any expired timers.
func (c *mockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now
	timers := c.timers
	c.mu.Unlock()

	// Fire expired timers outside the lock so callbacks can schedule
	// new timers without deadlocking.
	for _, t := range timers {
		t.mu.Lock()
		ready := !t.stopped && !t.fired && !t.deadline.After(now)
		if ready {
			t.fired = true
		}
		f := t.f
		t.mu.Unlock()

		if ready {
			f()
		}
	}
}

type mockTimer struct {
	mu       sync.Mutex
	deadline time.Time
	f        func()
	stopped  bool
	fired    bool
}

func (t *mockTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
