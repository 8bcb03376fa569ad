package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
	WaveSaw
)

// Ramp is how a value moves from its start to its end over a tone.
type Ramp int

const (
	RampLinear Ramp = iota
	RampExp
)

// Tone is one synthesized note with a pitch sweep and a gain envelope.
type Tone struct {
	Wave     Wave
	From, To float64 // Hz
	FreqRamp Ramp
	Gain     float64
	GainEnd  float64
	GainRamp Ramp
	Duration time.Duration
}

// Cue is a tone scheduled relative to now.
type Cue struct {
	Tone  Tone
	Delay time.Duration
}

type toneStreamer struct {
	tone  Tone
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
}

func newToneStreamer(t Tone, rate beep.SampleRate) *toneStreamer {
	return &toneStreamer{tone: t, rate: rate, total: rate.N(t.Duration)}
}

func (s *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		p := float64(s.pos) / float64(s.total)
		freq := ramp(s.tone.FreqRamp, s.tone.From, s.tone.To, p)
		gain := ramp(s.tone.GainRamp, s.tone.Gain, s.tone.GainEnd, p)

		val := oscillate(s.tone.Wave, s.phase) * gain
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *toneStreamer) Err() error { return nil }

func oscillate(w Wave, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveSaw:
		return 2 * (phase - 0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// ramp interpolates from a to b at progress p in [0, 1]. Exponential ramps
// need both ends positive and fall back to linear otherwise.
func ramp(r Ramp, a, b, p float64) float64 {
	if r == RampExp && a > 0 && b > 0 {
		return a * math.Pow(b/a, p)
	}
	return a + (b-a)*p
}

// streamerFor renders a cue: silence for the delay, then the tone.
func streamerFor(c Cue, rate beep.SampleRate) beep.Streamer {
	tone := newToneStreamer(c.Tone, rate)
	if c.Delay <= 0 {
		return tone
	}
	return beep.Seq(beep.Silence(rate.N(c.Delay)), tone)
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
