package engine

import (
	"sync"
	"time"
)

// TimeProvider abstracts the wall clock so frame timing can be driven by tests
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually advanced clock for tests
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a mock clock starting at startTime
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance moves the mocked time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// FrameClock measures elapsed seconds between ticks
// MaxDelta > 0 clamps a single delta after stalls; 0 leaves it unbounded
type FrameClock struct {
	provider TimeProvider
	last     time.Time
	MaxDelta float64
}

// NewFrameClock starts a clock on the given provider, nil means the monotonic clock
func NewFrameClock(provider TimeProvider, maxDelta float64) *FrameClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &FrameClock{
		provider: provider,
		last:     provider.Now(),
		MaxDelta: maxDelta,
	}
}

// Elapsed returns seconds since the last restart without resetting
func (c *FrameClock) Elapsed() float64 {
	return c.provider.Now().Sub(c.last).Seconds()
}

// Restart returns seconds since the previous restart and resets the reference point
func (c *FrameClock) Restart() float64 {
	now := c.provider.Now()
	dt := now.Sub(c.last).Seconds()
	c.last = now

	if dt < 0 {
		dt = 0
	}
	if c.MaxDelta > 0 && dt > c.MaxDelta {
		dt = c.MaxDelta
	}
	return dt
}
