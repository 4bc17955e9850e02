package shared

import (
	"sync"
	"time"
)

// Clock is an abstraction for wall-clock time so the simulation driver can be tested
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock reads the system time
type RealClock struct{}

// Now returns the current system time in UTC
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Sleep blocks for the given duration
func (r *RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// MockClock is a manually driven clock, safe for use from several goroutines
type MockClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewMockClock creates a MockClock starting at the given time.
// A zero start time is replaced by the current time.
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &MockClock{current: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Sleep advances the mock clock without blocking
func (m *MockClock) Sleep(d time.Duration) {
	m.Advance(d)
}

// Advance moves the clock forward
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.current = m.current.Add(d)
	m.mu.Unlock()
}

// SetTime pins the clock to t
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	m.current = t
	m.mu.Unlock()
}
