// Package audio plays the game's sound effects through the system speaker.
// Every sound is synthesized; there are no sample files.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/pop-arcade/internal/games/pop"
)

var _ pop.Notifier = (*Player)(nil)

const (
	sampleRate   = beep.SampleRate(48000)
	masterVolume = 0.3

	// Events closer together than this belong to the same hit.
	burstWindow = 20 * time.Millisecond
)

// Player turns game events into sounds. Until Initialize succeeds every
// call is a no-op, so a machine without an audio device plays silently.
// It is safe for concurrent use.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	logger      *log.Logger
	now         func() time.Time

	// burst state: pops of one hit are spaced out, and pushed back
	// after a streak break so the break is heard first.
	burstAt      time.Time
	pops         int
	milestones   int
	breakPending bool

	// sink receives scheduled cues; nil plays them on the mixer.
	sink func(Cue)
}

// NewPlayer creates a player. Call Initialize to open the speaker.
func NewPlayer(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		logger: logger,
		now:    time.Now,
	}
}

// Initialize opens the speaker. On failure the player stays silent.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup stops playback and releases the speaker.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// IsInitialized reports whether the speaker is open.
func (p *Player) IsInitialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// SetMuted mutes or unmutes. Muting cuts sounds already playing.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	p.logger.Debug("audio mute changed", "muted", muted)
	if muted && p.initialized {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

// ToggleMute flips the mute state and returns the new one.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	muted := !p.muted
	p.mu.Unlock()

	p.SetMuted(muted)
	return muted
}

// Muted reports the mute state.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// OnPop queues the pop tone for one stack layer, spaced within the burst.
func (p *Player) OnPop(stackIndex int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enqueue(Cue{Tone: PopTone(stackIndex), Delay: p.nextPopDelay()})
}

// OnSpeedBonus queues the speed chime in place of a pop.
func (p *Player) OnSpeedBonus() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enqueue(Cue{Tone: SpeedTone(), Delay: p.nextPopDelay()})
}

// OnStreakBreak plays the break tone and delays the pops that follow it.
func (p *Player) OnStreakBreak() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touchBurst()
	p.breakPending = true
	p.enqueue(Cue{Tone: BreakTone()})
}

// OnMilestone queues the fanfare for a multiplier milestone, staggered after
// earlier milestones of the same burst.
func (p *Player) OnMilestone(value int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touchBurst()
	offset := time.Duration(p.milestones) * milestoneSpacing
	p.milestones++
	for _, c := range MilestoneCues(value) {
		c.Delay += offset
		p.enqueue(c)
	}
}

// OnCountdownTick plays the countdown ping for secondsLeft.
func (p *Player) OnCountdownTick(secondsLeft int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enqueue(Cue{Tone: CountdownTone(secondsLeft)})
}

// OnGameOver plays the closing jingle.
func (p *Player) OnGameOver() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, c := range GameOverCues() {
		p.enqueue(c)
	}
}

// touchBurst starts a new burst when the previous event is stale.
func (p *Player) touchBurst() {
	now := p.now()
	if now.Sub(p.burstAt) > burstWindow {
		p.pops = 0
		p.milestones = 0
		p.breakPending = false
	}
	p.burstAt = now
}

func (p *Player) nextPopDelay() time.Duration {
	p.touchBurst()
	d := time.Duration(p.pops) * popSpacing
	if p.breakPending {
		d += afterBreakDelay
	}
	p.pops++
	return d
}

// enqueue must be called with p.mu held.
func (p *Player) enqueue(c Cue) {
	if p.muted {
		return
	}
	if p.sink != nil {
		p.sink(c)
		return
	}
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(withVolume(streamerFor(c, sampleRate), masterVolume))
	speaker.Unlock()
}
