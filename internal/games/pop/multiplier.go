package pop

import (
	"math"
	"time"

	"github.com/vovakirdan/pop-arcade/internal/config"
)

// Multiplier is the combo state machine. It starts idle (no active key) and
// becomes active on the first hit. The value stays within [1, cap]; it only
// grows on hits and only shrinks through Decay.
type Multiplier struct {
	cfg config.PopMultiplier

	value        float64
	activeKey    string
	streakPoints int
	bestStreak   int
}

// Transition describes one hit applied to the multiplier.
type Transition struct {
	Broke      bool    // The hit ended the previous streak
	Rapid      bool    // Speed bonus applied
	Base       float64 // Multiplier the hit scored at
	Gain       float64
	Next       float64 // Multiplier after the hit
	Milestones []int   // Crossed multiples of the milestone step, ascending
}

// NewMultiplier creates an idle multiplier at 1.0.
func NewMultiplier(cfg config.PopMultiplier) *Multiplier {
	return &Multiplier{cfg: cfg, value: 1.0}
}

// Reset returns to the idle state.
func (m *Multiplier) Reset() {
	m.value = 1.0
	m.activeKey = ""
	m.streakPoints = 0
	m.bestStreak = 0
}

// Value returns the current multiplier.
func (m *Multiplier) Value() float64 { return m.value }

// ActiveKey returns the streak key, or "" before the first hit.
func (m *Multiplier) ActiveKey() string { return m.activeKey }

// StreakPoints returns points earned since the last break.
func (m *Multiplier) StreakPoints() int { return m.streakPoints }

// BestStreak returns the best streak total this run.
func (m *Multiplier) BestStreak() int { return m.bestStreak }

// Breaks reports whether a hit on key would end the active streak.
func (m *Multiplier) Breaks(key string) bool {
	return m.activeKey != "" && m.activeKey != key
}

// Apply registers a hit. broke is decided by the caller because Pro mode
// judges against the route head rather than the active key.
func (m *Multiplier) Apply(key string, broke bool, stack int, gainBase float64, rapid bool) Transition {
	base := m.value
	if broke {
		base = 1.0
	}

	gain := gainBase * float64(stack)
	if rapid {
		gain *= 2
	}
	next := math.Min(base+gain, m.cfg.Cap)

	tr := Transition{
		Broke:      broke,
		Rapid:      rapid,
		Base:       base,
		Gain:       gain,
		Next:       next,
		Milestones: Milestones(base, next, m.cfg.MilestoneStep),
	}

	m.value = next
	m.activeKey = key
	if broke {
		m.streakPoints = 0
	}
	return tr
}

// Credit adds earned points to the running streak.
func (m *Multiplier) Credit(points int) {
	m.streakPoints += points
	m.bestStreak = max(m.bestStreak, m.streakPoints)
}

// Decay bleeds the multiplier over dt, proportionally to its current value,
// and never below 1.0.
func (m *Multiplier) Decay(dt time.Duration) {
	if m.value <= 1.0 {
		m.value = 1.0
		return
	}
	drop := dt.Seconds() * m.cfg.DecayRate * (m.value * 0.5)
	m.value = math.Max(1.0, m.value-drop)
}

// Milestones returns one value per multiple of step crossed going from base
// to next.
func Milestones(base, next float64, step int) []int {
	if step <= 0 {
		return nil
	}
	s := float64(step)
	prev := int(math.Floor(base / s))
	cur := int(math.Floor(next / s))

	var out []int
	for tier := prev + 1; tier <= cur; tier++ {
		out = append(out, tier*step)
	}
	return out
}
