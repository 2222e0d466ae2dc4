package clock

import (
	"sync"
	"time"
)

// Precision is the finest timestamp resolution the SQL engines store. Clocks
// truncate to it so a timestamp survives a database round trip unchanged.
const Precision = time.Microsecond

// Clock supplies the timestamps engines stamp onto rows.
type Clock interface {
	Now() time.Time
}

// RealClock is the production implementation using actual system time.
type RealClock struct{}

// NewRealClock creates a new RealClock.
func NewRealClock() Clock {
	return &RealClock{}
}

// Now returns the current UTC time truncated to Precision.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(Precision)
}

// MockClock is a controllable clock for tests. When created with a step it
// advances by that step after every reading, so successive writes get
// strictly increasing timestamps. It is safe for concurrent use.
type MockClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewMockClock creates a MockClock frozen at the given time.
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{current: startTime.UTC().Truncate(Precision)}
}

// NewSteppingClock creates a MockClock that advances by step on every Now.
func NewSteppingClock(startTime time.Time, step time.Duration) *MockClock {
	c := NewMockClock(startTime)
	c.step = step
	return c
}

// Now returns the mock current time.
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.current
	m.current = m.current.Add(m.step)
	return now
}

// Set sets the mock current time.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = t.UTC().Truncate(Precision)
}

// Advance advances the mock clock by the given duration.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.current.Add(d)
}
