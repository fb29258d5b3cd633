// Package testutil holds helpers shared by package tests.
package testutil

import (
	"sync"
	"time"
)

// Clock provides deterministic, monotonically increasing timestamps.
// It is safe for concurrent use.
type Clock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewClock returns a clock initialized to a fixed UTC start time that
// advances by one second per call.
func NewClock() *Clock {
	return &Clock{
		current: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		step:    time.Second,
	}
}

// Now advances the clock and returns the new time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = c.current.Add(c.step)

	return c.current
}
