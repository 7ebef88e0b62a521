// Package clock samples elapsed session time.
package clock

import (
	"sync"
	"time"
)

// PollInterval is how often a running session is sampled.
const PollInterval = 100 * time.Millisecond

// Source supplies wall time.
type Source interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

// Now implements Source.
func (System) Now() time.Time {
	return time.Now()
}

// Manual is a Source that only moves when told to.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a Manual source starting at t.
func NewManual(t time.Time) *Manual {
	return &Manual{now: t}
}

// Now implements Source.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the source forward by d.
func (m *Manual) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

// Set moves the source to t. Moving backwards is allowed; Clock clamps.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Clock measures time since a captured start.
type Clock struct {
	src     Source
	startAt time.Time
	started bool
}

// New returns a Clock reading from src. A nil src uses System.
func New(src Source) *Clock {
	if src == nil {
		src = System{}
	}
	return &Clock{src: src}
}

// Start captures the start timestamp. Later calls are ignored.
func (c *Clock) Start() time.Time {
	if !c.started {
		c.startAt = c.src.Now()
		c.started = true
	}
	return c.startAt
}

// Started reports whether Start has been called.
func (c *Clock) Started() bool {
	return c.started
}

// StartedAt returns the captured start, or the zero time.
func (c *Clock) StartedAt() time.Time {
	return c.startAt
}

// Now reads the underlying source.
func (c *Clock) Now() time.Time {
	return c.src.Now()
}

// Elapsed returns the time between the captured start and now. It is zero
// before Start and never negative.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	if !c.started {
		return 0
	}
	d := now.Sub(c.startAt)
	if d < 0 {
		return 0
	}
	return d
}

// Sample returns Elapsed at the source's current time.
func (c *Clock) Sample() time.Duration {
	return c.Elapsed(c.src.Now())
}
