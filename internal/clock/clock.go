// Package clock is the terminal's single source of "now". It either follows
// the wall clock, refreshed once per second, or is pinned to an operator
// supplied instant so time-gated rules can be exercised at any hour.
package clock

import (
	"context"
	"sync"
	"time"

	pkgerrors "bakery/pkg/errors"
)

// TickInterval is how often the live clock is refreshed.
const TickInterval = time.Second

// Option customises a Clock.
type Option func(*Clock)

// WithNowFunc replaces the wall clock. Tests use it to control live mode.
func WithNowFunc(fn func() time.Time) Option {
	return func(c *Clock) {
		c.wall = fn
	}
}

// Clock is safe for concurrent use.
type Clock struct {
	mu          sync.RWMutex
	wall        func() time.Time
	loc         *time.Location
	current     time.Time
	simulated   bool
	subscribers []func(time.Time)
}

// New creates a live clock reporting instants in loc.
func New(loc *time.Location, opts ...Option) *Clock {
	if loc == nil {
		loc = time.Local
	}
	c := &Clock{
		wall: time.Now,
		loc:  loc,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.current = c.wall().In(loc)
	return c
}

// Now returns the current instant of the terminal.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// IsSimulated reports whether the clock is pinned.
func (c *Clock) IsSimulated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.simulated
}

// Location returns the time zone all instants are reported in.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Subscribe registers fn to be called with the new instant after every tick
// or simulation change. Callbacks run synchronously on the changing goroutine.
func (c *Clock) Subscribe(fn func(time.Time)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// Tick refreshes a live clock from the wall clock. It is a no-op while simulated.
func (c *Clock) Tick() {
	c.mu.Lock()
	if c.simulated {
		c.mu.Unlock()
		return
	}
	c.current = c.wall().In(c.loc)
	c.mu.Unlock()
	c.notify()
}

// Run refreshes the live clock every TickInterval until ctx is done.
func (c *Clock) Run(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// SetSimulated pins the clock to t and suspends the live tick.
func (c *Clock) SetSimulated(t time.Time) {
	c.mu.Lock()
	c.simulated = true
	c.current = t.In(c.loc)
	c.mu.Unlock()
	c.notify()
}

// Simulate pins the clock to hour:minute:00 on today's wall-clock date.
func (c *Clock) Simulate(hour, minute int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid time %02d:%02d", hour, minute)
	}
	today := c.wall().In(c.loc)
	c.SetSimulated(time.Date(today.Year(), today.Month(), today.Day(), hour, minute, 0, 0, c.loc))
	return nil
}

// Reset returns to live mode at the present instant.
func (c *Clock) Reset() {
	c.mu.Lock()
	c.simulated = false
	c.current = c.wall().In(c.loc)
	c.mu.Unlock()
	c.notify()
}

func (c *Clock) notify() {
	c.mu.RLock()
	now := c.current
	subs := make([]func(time.Time), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.RUnlock()

	for _, fn := range subs {
		fn(now)
	}
}
