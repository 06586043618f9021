package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(8000)

// drain streams s to exhaustion and returns every sample
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 128)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

// constant streams the same value forever
type constant float64

func (c constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{float64(c), float64(c)}
	}
	return len(samples), true
}

func (constant) Err() error { return nil }

func TestToneLengthAndRange(t *testing.T) {
	waves := map[string]Wave{
		"sine":   WaveSine,
		"square": WaveSquare,
		"saw":    WaveSaw,
		"noise":  WaveNoise,
	}

	for name, wave := range waves {
		t.Run(name, func(t *testing.T) {
			s, err := Tone(wave, 440, 50*time.Millisecond, testRate)
			if err != nil {
				t.Fatalf("Tone: %v", err)
			}

			samples := drain(s)
			if len(samples) != 400 {
				t.Errorf("Expected 400 samples, got %d", len(samples))
			}
			for i, smp := range samples {
				if smp[0] < -1 || smp[0] > 1 || smp[0] != smp[1] {
					t.Fatalf("Sample %d out of range or unbalanced: %v", i, smp)
				}
			}
		})
	}
}

func TestToneRejectsAliasedSine(t *testing.T) {
	if _, err := Tone(WaveSine, 6000, time.Second, testRate); err == nil {
		t.Error("Expected error for a sine above the Nyquist frequency")
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := Envelope(constant(1), 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)

	samples := drain(s)
	if len(samples) != 100 {
		t.Fatalf("Expected 100 samples, got %d", len(samples))
	}

	checks := map[int]float64{0: 0, 5: 0.5, 50: 1, 90: 0.5, 99: 0.05}
	for i, want := range checks {
		if got := samples[i][0]; got < want-1e-9 || got > want+1e-9 {
			t.Errorf("Sample %d: expected gain %.2f, got %.4f", i, want, got)
		}
	}
}

func TestVolumeSilent(t *testing.T) {
	s := Volume(beep.Take(64, constant(1)), 0)
	for i, smp := range drain(s) {
		if smp[0] != 0 {
			t.Fatalf("Sample %d not silent: %v", i, smp)
		}
	}
}

func TestStartCueLength(t *testing.T) {
	samples := drain(StartCue(testRate))
	if want := 2 * testRate.N(startNoteLen); len(samples) != want {
		t.Errorf("Expected %d samples, got %d", want, len(samples))
	}
}

func TestExitCueAudible(t *testing.T) {
	buf := make([][2]float64, 512)
	n, ok := ExitCue(testRate).Stream(buf)
	if !ok || n == 0 {
		t.Fatalf("Expected samples, got n=%d ok=%v", n, ok)
	}

	peak := 0.0
	for _, smp := range buf[:n] {
		peak = max(peak, smp[0], -smp[0])
	}
	if peak == 0 {
		t.Error("Expected a non-silent bell")
	}
}
