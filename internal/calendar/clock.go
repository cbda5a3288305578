// internal/calendar/clock.go
package calendar

import (
	"sync"
	"time"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a settable clock for tests and replays.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualClock starts a clock at the given day, local midnight.
func NewManualClock(today Date) *ManualClock {
	return &ManualClock{now: today.midnight()}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to the given day.
func (c *ManualClock) Set(today Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = today.midnight()
}

// Today is the calendar day the clock reads.
func Today(clock Clock) Date {
	return FromTime(clock.Now())
}

func (d Date) midnight() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.Local)
}
