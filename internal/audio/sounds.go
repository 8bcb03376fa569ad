package audio

import "time"

const (
	popSpacing       = 60 * time.Millisecond
	afterBreakDelay  = 120 * time.Millisecond
	milestoneSpacing = 90 * time.Millisecond
)

// PopTone is the rising blip for the i-th pop of a stack.
func PopTone(i int) Tone {
	freq := 440 + (1+float64(i)*0.1)*50
	return Tone{
		Wave: WaveSquare, From: freq, To: freq + 100,
		Gain: 0.1, Duration: 100 * time.Millisecond,
	}
}

// SpeedTone is the bright chirp used instead of PopTone for rapid hits.
func SpeedTone() Tone {
	return Tone{
		Wave: WaveSaw, From: 1200, To: 2000, FreqRamp: RampExp,
		Gain: 0.08, GainEnd: 0.01, GainRamp: RampExp, Duration: 100 * time.Millisecond,
	}
}

// BreakTone is the falling buzz of a lost streak.
func BreakTone() Tone {
	return Tone{
		Wave: WaveSaw, From: 150, To: 100,
		Gain: 0.3, Duration: 300 * time.Millisecond,
	}
}

// CountdownTone is the ping for the last seconds of a run.
func CountdownTone(secondsLeft int) Tone {
	freq := 880.0
	switch {
	case secondsLeft == 2:
		freq = 987
	case secondsLeft == 1:
		freq = 1174
	case secondsLeft > 3:
		freq = 660
	}
	return Tone{
		Wave: WaveSine, From: freq, To: freq,
		Gain: 0.15, GainEnd: 0.01, GainRamp: RampExp, Duration: 150 * time.Millisecond,
	}
}

// GameOverCues is a short descending phrase.
func GameOverCues() []Cue {
	notes := []float64{440, 415, 392, 370}
	cues := make([]Cue, len(notes))
	for i, f := range notes {
		cues[i] = Cue{
			Tone: Tone{
				Wave: WaveSquare, From: f, To: f,
				Gain: 0.2, Duration: 150 * time.Millisecond,
			},
			Delay: time.Duration(i) * 200 * time.Millisecond,
		}
	}
	return cues
}

// MilestoneCues is a three note arpeggio; the cap gets a brighter one.
func MilestoneCues(value int) []Cue {
	notes := []float64{440, 587, 831}
	wave, gain := WaveTriangle, 0.14
	if value >= 20 {
		notes = []float64{523, 698, 988}
		wave, gain = WaveSquare, 0.18
	}
	cues := make([]Cue, len(notes))
	for i, f := range notes {
		cues[i] = Cue{
			Tone: Tone{
				Wave: wave, From: f, To: f * 1.02, FreqRamp: RampExp,
				Gain: gain, GainEnd: 0.01, GainRamp: RampExp, Duration: 70 * time.Millisecond,
			},
			Delay: time.Duration(i) * 70 * time.Millisecond,
		}
	}
	return cues
}
