package pop

import (
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/pop-arcade/internal/config"
	"github.com/vovakirdan/pop-arcade/internal/core"
)

// Route is the Pro mode queue of shapes the player must pop in order.
// The head, when present, always exists on the board after a Heal.
type Route struct {
	length int
	queue  []Shape
	rng    *rand.Rand
}

// NewRoute creates an empty route of the given maximum length.
func NewRoute(length int, rng *rand.Rand) *Route {
	return &Route{length: length, rng: rng}
}

// Queue returns a copy of the current queue.
func (r *Route) Queue() []Shape {
	return slices.Clone(r.queue)
}

// Head returns the required shape.
func (r *Route) Head() (Shape, bool) {
	if len(r.queue) == 0 {
		return 0, false
	}
	return r.queue[0], true
}

// Tail returns the queue without its head.
func (r *Route) Tail() []Shape {
	if len(r.queue) == 0 {
		return nil
	}
	return slices.Clone(r.queue[1:])
}

// Reset empties the queue.
func (r *Route) Reset() {
	r.queue = nil
}

// Sync rebuilds the queue from live targets and seed. The queue only
// changes when the rebuilt content differs.
func (r *Route) Sync(live []Target, seed []Shape) ([]Shape, bool) {
	next := Rebuild(live, seed, r.length, r.rng)
	if slices.Equal(next, r.queue) {
		return r.Queue(), false
	}
	r.queue = next
	return r.Queue(), true
}

// Heal resyncs after the board changed. A head that vanished from the board
// is dropped by seeding with the tail.
func (r *Route) Heal(live []Target) ([]Shape, bool) {
	if head, ok := r.Head(); ok && !hasShape(live, head) {
		return r.Sync(live, r.Tail())
	}
	return r.Sync(live, r.queue)
}

// Rebuild computes a queue of up to length shapes from the live targets.
// Seed entries still represented on the board are kept in order, each
// consuming one target of its shape. Remaining slots are drawn from a pool
// weighted by how many unclaimed targets each shape has, avoiding an
// immediate repeat when another shape is available.
func Rebuild(live []Target, seed []Shape, length int, rng *rand.Rand) []Shape {
	if len(live) == 0 {
		return nil
	}

	// Shapes in order of first appearance keep draws reproducible.
	var order []Shape
	counts := make(map[Shape]int)
	for _, t := range live {
		if _, seen := counts[t.Shape]; !seen {
			order = append(order, t.Shape)
		}
		counts[t.Shape]++
	}

	next := make([]Shape, 0, length)
	for _, s := range seed {
		if len(next) >= length {
			break
		}
		if counts[s] > 0 {
			next = append(next, s)
			counts[s]--
		}
	}

	for len(next) < length {
		var pool []Shape
		for _, s := range order {
			for i := 0; i < counts[s]; i++ {
				pool = append(pool, s)
			}
		}
		if len(pool) == 0 {
			break
		}

		pick := pool[rng.Intn(len(pool))]
		if len(next) > 0 && pick == next[len(next)-1] {
			for _, alt := range pool {
				if alt != pick {
					pick = alt
					break
				}
			}
		}

		next = append(next, pick)
		counts[pick]--
	}

	return next
}

func hasShape(targets []Target, s Shape) bool {
	for _, t := range targets {
		if t.Shape == s {
			return true
		}
	}
	return false
}

// QueuePanel returns the rectangle, in viewport units, where the route HUD is
// drawn: length icons centered horizontally at the configured top offset.
func QueuePanel(vp Viewport, diameter float64, cfg config.PopRouteZone, length int) core.Zone {
	icon := math.Max(cfg.MinIconSize, math.Round(diameter*cfg.IconScale))
	n := float64(length)
	w := cfg.PaddingX*2 + n*icon + (n-1)*cfg.Gap
	h := cfg.PaddingY*2 + icon
	cx := vp.W / 2
	return core.Zone{
		Left:   cx - w/2,
		Right:  cx + w/2,
		Top:    cfg.TopOffset,
		Bottom: cfg.TopOffset + h,
	}
}

// QueueZone returns the no-spawn zone around the route HUD: the panel grown
// by a margin tied to the target size.
func QueueZone(vp Viewport, diameter float64, cfg config.PopRouteZone, length int) core.Zone {
	p := QueuePanel(vp, diameter, cfg, length)
	grow := math.Max(diameter*cfg.Expansion, cfg.MinExpansion)
	return core.Zone{
		Left:   p.Left - grow,
		Right:  p.Right + grow,
		Top:    p.Top - grow,
		Bottom: p.Bottom + grow,
	}
}
