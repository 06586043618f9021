package engine

import (
	"errors"
	"time"
)

var ErrInvalidFPS = errors.New("target fps must be greater than zero")

// FrameBudget returns the wall time allotted to one frame, truncated to whole nanoseconds
func FrameBudget(fps uint32) (time.Duration, error) {
	if fps == 0 {
		return 0, ErrInvalidFPS
	}
	return time.Second / time.Duration(fps), nil
}

// Pacer throttles the loop to a target frame rate
// Begin stamps the start of a tick; Pace measures the time spent since that stamp and sleeps
// the rest of the budget. Slow frames are not compensated: no catch-up, no frame skipping,
// the next tick simply starts late
type Pacer struct {
	budget time.Duration
	clock  TimeProvider
	sleep  Sleeper

	tickStart time.Time
	elapsed   time.Duration
}

// NewPacer creates a pacer for fps, a nil clock or sleeper selects the system ones
func NewPacer(fps uint32, clock TimeProvider, sleep Sleeper) (*Pacer, error) {
	budget, err := FrameBudget(fps)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Pacer{
		budget:    budget,
		clock:     clock,
		sleep:     sleep,
		tickStart: clock.Now(),
	}, nil
}

// Budget returns the per-frame budget
func (p *Pacer) Budget() time.Duration {
	return p.budget
}

// Reset restamps the tick start, called once before the first frame
func (p *Pacer) Reset() {
	p.tickStart = p.clock.Now()
	p.elapsed = 0
}

// Begin stamps the start of the current tick
func (p *Pacer) Begin() time.Time {
	p.tickStart = p.clock.Now()
	return p.tickStart
}

// Pace sleeps out the rest of the budget and returns the slept duration
// overrun is true when the tick already used the whole budget
// The tick start stays at Begin's stamp; time spent sleeping is never charged to the next tick
func (p *Pacer) Pace() (slept time.Duration, overrun bool) {
	p.elapsed = p.clock.Now().Sub(p.tickStart)
	if p.elapsed >= p.budget {
		return 0, true
	}
	slept = p.budget - p.elapsed
	p.sleep(slept)
	return slept, false
}

// Elapsed returns the tick time measured by the last Pace, excluding the sleep
func (p *Pacer) Elapsed() time.Duration {
	return p.elapsed
}
