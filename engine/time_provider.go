package engine

import "time"

// TimeProvider supplies the current time to the pacer
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock, including its monotonic component
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a system clock provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns time.Now()
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// Sleeper blocks the calling goroutine for d
type Sleeper func(d time.Duration)
