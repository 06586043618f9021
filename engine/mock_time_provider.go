package engine

import (
	"slices"
	"sync"
	"time"
)

// MockTimeProvider is a manually driven clock for tests and replays
// Sleep moves the clock instead of blocking and records each duration
type MockTimeProvider struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewMockTimeProvider creates a mock clock stopped at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now implements TimeProvider
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// SetTime jumps the clock to t, backwards included
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d, negative durations are ignored
func (m *MockTimeProvider) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Sleep is a Sleeper that advances the clock by d
func (m *MockTimeProvider) Sleep(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sleeps = append(m.sleeps, d)
	if d > 0 {
		m.now = m.now.Add(d)
	}
}

// Sleeps returns every duration passed to Sleep, oldest first
func (m *MockTimeProvider) Sleeps() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sleeps)
}
