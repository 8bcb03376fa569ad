package pop

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/pop-arcade/internal/config"
	"github.com/vovakirdan/pop-arcade/internal/core"
)

// Placer finds positions for new targets. Distances in its config are
// multiples of the target diameter.
type Placer struct {
	cfg config.PopPlacement
	rng *rand.Rand
}

// NewPlacer creates a placer drawing from rng.
func NewPlacer(cfg config.PopPlacement, rng *rand.Rand) *Placer {
	return &Placer{cfg: cfg, rng: rng}
}

// Place returns the center of a new target in percent coordinates.
//
// Each attempt picks a candidate next to anchor (early attempts only) or
// anywhere in the safe rectangle, then rejects it when it is too close to an
// edge or the header band, inside zone, overlapping an existing target,
// touching more targets than allowed, or would be the third target touching
// an existing one. The first candidate that survives
// wins. Running out of attempts is not an error; the caller simply places
// fewer targets this round.
func (p *Placer) Place(existing []Target, diameter float64, vp Viewport, zone *core.Zone, anchor *Target) (core.Point, bool) {
	if vp.Empty() || diameter <= 0 {
		return core.Point{}, false
	}

	for attempt := 0; attempt < p.cfg.Attempts; attempt++ {
		var c core.Point
		if anchor != nil && attempt < p.cfg.AnchorAttempts {
			c = p.nearAnchor(*anchor, diameter, vp)
		} else {
			c = p.inSafeRect(diameter, vp)
		}

		if !p.inBounds(c, diameter, vp) {
			continue
		}
		if zone != nil && zone.Contains(c) {
			continue
		}
		if !p.clearOf(existing, c, diameter, vp) {
			continue
		}

		return core.Point{X: core.ToPct(c.X, vp.W), Y: core.ToPct(c.Y, vp.H)}, true
	}
	return core.Point{}, false
}

func (p *Placer) nearAnchor(anchor Target, diameter float64, vp Viewport) core.Point {
	angle := p.rng.Float64() * 2 * math.Pi
	dist := diameter * p.cfg.AnchorOffset
	a := anchor.Center(vp)
	return core.Point{
		X: a.X + math.Cos(angle)*dist,
		Y: a.Y + math.Sin(angle)*dist,
	}
}

// inSafeRect samples uniformly inside the viewport inset by EdgeInset
// diameters, below the header band. A degenerate axis falls back to the
// viewport midpoint.
func (p *Placer) inSafeRect(diameter float64, vp Viewport) core.Point {
	pad := diameter * p.cfg.EdgeInset
	header := vp.H * p.cfg.HeaderBand

	minX, maxX := pad, vp.W-pad
	minY, maxY := header+pad, vp.H-pad

	var c core.Point
	if maxX > minX {
		c.X = minX + p.rng.Float64()*(maxX-minX)
	} else {
		c.X = vp.W / 2
	}
	if maxY > minY {
		c.Y = minY + p.rng.Float64()*(maxY-minY)
	} else {
		c.Y = vp.H / 2
	}
	return c
}

func (p *Placer) inBounds(c core.Point, diameter float64, vp Viewport) bool {
	margin := diameter * p.cfg.EdgeMargin
	if c.X < margin || c.X > vp.W-margin || c.Y < margin || c.Y > vp.H-margin {
		return false
	}
	// Header band, with half the margin as tolerance.
	return c.Y >= vp.H*p.cfg.HeaderBand+margin/2
}

func (p *Placer) clearOf(existing []Target, c core.Point, diameter float64, vp Viewport) bool {
	minDist := diameter * p.cfg.MinSpacing
	touchDist := diameter * p.cfg.TouchDistance

	var touched []int
	for i, other := range existing {
		d := c.Dist(other.Center(vp))
		if d < minDist {
			return false
		}
		if d <= touchDist {
			touched = append(touched, i)
		}
	}
	if len(touched) > p.cfg.MaxTouching {
		return false
	}

	// The candidate must not become one neighbor too many for a target
	// it touches.
	for _, i := range touched {
		if neighbors(existing, i, touchDist, vp) > p.cfg.MaxTouching {
			return false
		}
	}
	return true
}

func neighbors(targets []Target, idx int, touchDist float64, vp Viewport) int {
	c := targets[idx].Center(vp)
	n := 0
	for j, other := range targets {
		if j != idx && c.Dist(other.Center(vp)) <= touchDist {
			n++
		}
	}
	return n
}

// chooseAnchor returns a random existing target of the given color with
// probability chance, or nil.
func chooseAnchor(existing []Target, color core.Color, chance float64, rng *rand.Rand) *Target {
	if rng.Float64() >= chance || len(existing) == 0 {
		return nil
	}
	var same []int
	for i := range existing {
		if existing[i].Color == color {
			same = append(same, i)
		}
	}
	if len(same) == 0 {
		return nil
	}
	t := existing[same[rng.Intn(len(same))]]
	return &t
}
