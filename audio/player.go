package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/buji/logging"
)

// speakerLatency is the device buffer length
const speakerLatency = 100 * time.Millisecond

// Player mixes cues onto the speaker
// A player that failed to start drops every cue, so a run without a sound device stays silent
type Player struct {
	rate   beep.SampleRate
	volume float64
	logger logging.Logger
	mixer  *beep.Mixer

	mu      sync.Mutex
	started bool
}

// NewPlayer creates a stopped player, volume is linear in [0, 1]
func NewPlayer(rate beep.SampleRate, volume float64, logger logging.Logger) *Player {
	return &Player{
		rate:   rate,
		volume: volume,
		logger: logger,
		mixer:  &beep.Mixer{},
	}
}

// Start opens the speaker and attaches the mixer
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(speakerLatency)); err != nil {
		logging.Logf(p.logger, logging.LevelWarn, "audio disabled: %v", err)
		return err
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Started reports whether cues reach the speaker
func (p *Player) Started() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.started
}

// Play queues s at the player's volume, false when the player is stopped
func (p *Player) Play(s beep.Streamer) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started || s == nil {
		return false
	}
	speaker.Lock()
	p.mixer.Add(Volume(s, p.volume))
	speaker.Unlock()
	return true
}

// Stop silences queued cues and closes the speaker
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
}
