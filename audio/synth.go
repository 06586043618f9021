package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave is an oscillator shape
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Cue timings
const (
	cueAttack       = 5 * time.Millisecond
	startNoteLen    = 80 * time.Millisecond
	startRelease    = 60 * time.Millisecond
	exitBellLen     = 400 * time.Millisecond
	exitBellRelease = 350 * time.Millisecond
)

// oscillator renders a periodic wave for a fixed number of samples
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// Tone returns d worth of wave at freq
// Sines come from the beep generator, the other shapes from a local oscillator
func Tone(wave Wave, freq float64, d time.Duration, rate beep.SampleRate) (beep.Streamer, error) {
	if wave == WaveSine {
		sine, err := generators.SineTone(rate, freq)
		if err != nil {
			return nil, err
		}
		return beep.Take(rate.N(d), sine), nil
	}
	return &oscillator{freq: freq, length: rate.N(d), wave: wave, rate: rate}, nil
}

// envelope ramps volume up over attack and down over release
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// Envelope shapes s with a linear attack and release over a total of d
func Envelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		gain := 1.0
		if e.attack > 0 && e.position < e.attack {
			gain = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			gain = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}

		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Volume scales s linearly, zero or below is silent
func Volume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// StartCue is a rising two-note square chime
func StartCue(rate beep.SampleRate) beep.Streamer {
	low := &oscillator{freq: 659.25, length: rate.N(startNoteLen), wave: WaveSquare, rate: rate}
	high := &oscillator{freq: 987.77, length: rate.N(startNoteLen), wave: WaveSquare, rate: rate}
	return Volume(beep.Seq(
		Envelope(low, startNoteLen, cueAttack, startRelease, rate),
		Envelope(high, startNoteLen, cueAttack, startRelease, rate),
	), 0.3)
}

// ExitCue is a bell with an octave overtone
func ExitCue(rate beep.SampleRate) beep.Streamer {
	fund := &oscillator{freq: 880, length: rate.N(exitBellLen), wave: WaveSine, rate: rate}
	over := &oscillator{freq: 1760, length: rate.N(exitBellLen), wave: WaveSine, rate: rate}
	return Volume(beep.Mix(
		Volume(Envelope(fund, exitBellLen, cueAttack, exitBellRelease, rate), 0.7),
		Volume(Envelope(over, exitBellLen, cueAttack, exitBellRelease/2, rate), 0.3),
	), 0.5)
}
