package audio

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/lixenwraith/buji/engine"
)

// DefaultSampleRate is the rate every decoded sound is resampled to
const DefaultSampleRate = beep.SampleRate(44100)

// resampleQuality trades CPU for fidelity when a file's rate differs from the bank's
const resampleQuality = 4

var ErrUnknownSound = errors.New("sound not loaded")

// Bank decodes WAV assets once and keeps them as in-memory buffers at a single rate
type Bank struct {
	loader engine.AssetLoader
	format beep.Format

	mu     sync.Mutex
	sounds map[uint32]*beep.Buffer
}

// NewBank creates a bank reading raw bytes through loader
func NewBank(loader engine.AssetLoader, rate beep.SampleRate) *Bank {
	return &Bank{
		loader: loader,
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		sounds: make(map[uint32]*beep.Buffer),
	}
}

// Format returns the format every buffered sound shares
func (b *Bank) Format() beep.Format {
	return b.format
}

// Load decodes the WAV at path under id, repeated loads return the cached buffer
func (b *Bank) Load(id uint32, path string) (*beep.Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if buf, ok := b.sounds[id]; ok {
		return buf, nil
	}

	data, err := b.loader.LoadOrGet(id, path)
	if err != nil {
		return nil, err
	}

	decoded, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer decoded.Close()

	var s beep.Streamer = decoded
	if format.SampleRate != b.format.SampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, b.format.SampleRate, decoded)
	}

	buf := beep.NewBuffer(b.format)
	buf.Append(s)
	if err := decoded.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	b.sounds[id] = buf
	return buf, nil
}

// Streamer returns a fresh playback cursor over a loaded sound
func (b *Bank) Streamer(id uint32) (beep.StreamSeeker, error) {
	b.mu.Lock()
	buf, ok := b.sounds[id]
	b.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("sound %d: %w", id, ErrUnknownSound)
	}
	return buf.Streamer(0, buf.Len()), nil
}

// Len returns the number of loaded sounds
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sounds)
}
