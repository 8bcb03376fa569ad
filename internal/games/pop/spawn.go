package pop

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/pop-arcade/internal/config"
	"github.com/vovakirdan/pop-arcade/internal/core"
)

// Board is what the spawner needs to know about the running session.
type Board struct {
	Targets   []Target
	Viewport  Viewport
	Diameter  float64
	Zone      *core.Zone // Optional no-spawn rectangle
	ActiveKey string     // Current streak color (Arcade)
	Route     []Shape    // Current route queue (Pro)
	Score     int
	TimeLeft  int // Seconds
	Duration  int // Seconds
	Now       time.Time
}

// Spawner fills the board up to the mode's target ceiling.
type Spawner struct {
	mode   Mode
	cfg    config.PopSpawn
	placer *Placer
	diff   *config.DifficultyManager
	rng    *rand.Rand
	newID  func() string
}

// NewSpawner creates a spawner. newID must return unique ids.
func NewSpawner(mode Mode, cfg config.PopSpawn, placer *Placer, diff *config.DifficultyManager, rng *rand.Rand, newID func() string) *Spawner {
	return &Spawner{
		mode:   mode,
		cfg:    cfg,
		placer: placer,
		diff:   diff,
		rng:    rng,
		newID:  newID,
	}
}

// Fill returns the targets created this round. One placement is attempted
// per missing slot and later placements see earlier ones. Failed
// placements are skipped.
func (s *Spawner) Fill(b Board) []Target {
	needed := s.mode.MaxTargets - len(b.Targets)
	if needed <= 0 || b.Viewport.Empty() || len(s.mode.Colors) == 0 {
		return nil
	}

	working := make([]Target, len(b.Targets), len(b.Targets)+needed)
	copy(working, b.Targets)

	var created []Target
	for i := 0; i < needed; i++ {
		idx := s.pickIndex(b)
		color := s.mode.Colors[idx]
		shape := s.mode.Shapes[idx]
		stack := s.stackCount(b)

		anchor := chooseAnchor(working, color, s.cfg.ClusterChance, s.rng)
		pos, ok := s.placer.Place(working, b.Diameter, b.Viewport, b.Zone, anchor)
		if !ok {
			continue
		}

		t := Target{
			ID:         s.newID(),
			X:          pos.X,
			Y:          pos.Y,
			Color:      color,
			Shape:      shape,
			CreatedAt:  b.Now,
			StackCount: stack,
		}
		working = append(working, t)
		created = append(created, t)
	}
	return created
}

// pickIndex chooses a palette entry. Arcade favors the streak color, Pro
// favors the route head and then the next queued shape.
func (s *Spawner) pickIndex(b Board) int {
	n := len(s.mode.Colors)

	if s.mode.Route {
		var head, second *Shape
		if len(b.Route) > 0 {
			head = &b.Route[0]
		}
		if len(b.Route) > 1 {
			second = &b.Route[1]
		}
		weights := make([]int, n)
		for i, shape := range s.mode.Shapes {
			switch {
			case head != nil && shape == *head:
				weights[i] = s.cfg.RouteHeadWeight
			case second != nil && shape == *second:
				weights[i] = s.cfg.RouteNextWeight
			default:
				weights[i] = 1
			}
		}
		return s.weighted(weights)
	}

	if b.ActiveKey != "" {
		weights := make([]int, n)
		for i, c := range s.mode.Colors {
			if string(c) == b.ActiveKey {
				weights[i] = s.cfg.StreakWeight
			} else {
				weights[i] = 1
			}
		}
		return s.weighted(weights)
	}

	return s.rng.Intn(n)
}

func (s *Spawner) weighted(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return s.rng.Intn(len(weights))
	}

	r := s.rng.Float64() * float64(total)
	for i, w := range weights {
		r -= float64(w)
		if r < 0 {
			return i
		}
	}
	return s.rng.Intn(len(weights))
}

// stackCount rolls the burst size. The stacked chance and the base maximum
// ramp with run progress; the final stretch uses a fixed larger maximum.
// A tier roll then widens the range for rare high and extreme stacks.
func (s *Spawner) stackCount(b Board) int {
	elapsed := float64(b.Duration - b.TimeLeft)
	chance := s.diff.Lerp(s.cfg.StackChanceMin, s.cfg.StackChanceMax, b.Score, elapsed)
	if s.rng.Float64() >= chance {
		return 1
	}

	baseMax := s.baseStackMax(b)
	tierMax := baseMax
	roll := s.rng.Float64()
	switch {
	case roll >= s.cfg.ExtremeTierRoll:
		tierMax = baseMax * float64(s.cfg.ExtremeTierFactor)
	case roll >= s.cfg.HighTierRoll:
		tierMax = baseMax * float64(s.cfg.HighTierFactor)
	}

	return 2 + int(math.Floor(s.rng.Float64()*stackSpan(tierMax)))
}

func (s *Spawner) baseStackMax(b Board) float64 {
	if b.TimeLeft <= s.cfg.FinalStretchSecs {
		return float64(s.cfg.FinalStretchMax)
	}
	elapsed := float64(b.Duration - b.TimeLeft)
	return math.Max(2, math.Round(s.diff.Lerp(s.cfg.StackMaxStart, s.cfg.StackMaxEnd, b.Score, elapsed)))
}

func stackSpan(tierMax float64) float64 {
	return math.Max(1, math.Floor(tierMax)-1)
}

// MaxStack returns the largest stack the spawner can produce at the given
// point of a run.
func (s *Spawner) MaxStack(b Board) int {
	factor := max(1, s.cfg.HighTierFactor, s.cfg.ExtremeTierFactor)
	return 1 + int(stackSpan(s.baseStackMax(b)*float64(factor)))
}
