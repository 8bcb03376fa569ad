// Package pop implements Pop-a-Lot: targets spawn on the board, the player
// pops them before the countdown runs out, and score accrues through a
// decaying combo multiplier.
//
// Positions are stored as percentages of the viewport so a target keeps its
// relative place across redraws. All geometry runs in viewport units, where a
// terminal column is one unit wide and a row is two units tall, which keeps
// round targets round on a typical terminal font.
package pop

import (
	"math"
	"time"

	"github.com/vovakirdan/pop-arcade/internal/core"
)

// Target is a poppable entity on the board.
type Target struct {
	ID         string
	X, Y       float64 // Center, 0-100 of viewport width/height
	Color      core.Color
	Shape      Shape
	CreatedAt  time.Time
	StackCount int // Pops represented by this target, at least 1
}

// Center returns the target center in viewport units.
func (t Target) Center(vp Viewport) core.Point {
	return core.Point{
		X: core.FromPct(t.X, vp.W),
		Y: core.FromPct(t.Y, vp.H),
	}
}

// Viewport is the playfield size in viewport units.
type Viewport struct {
	W, H float64
}

// ViewportForScreen converts a terminal size in cells to viewport units.
func ViewportForScreen(cols, rows int) Viewport {
	return Viewport{W: float64(cols), H: float64(rows) * 2}
}

// Empty reports whether the viewport has no area.
func (vp Viewport) Empty() bool {
	return vp.W <= 0 || vp.H <= 0
}

// TargetDiameter returns the target size for a viewport: pct percent of the
// smaller side, floored to a whole unit.
func TargetDiameter(vp Viewport, pct float64) float64 {
	return math.Floor(math.Min(vp.W, vp.H) * pct / 100)
}

// UnitToCell maps a point in viewport units to a terminal cell.
func UnitToCell(p core.Point) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y / 2))
}

// CellToUnit maps a terminal cell to the viewport point at its center.
func CellToUnit(x, y int) core.Point {
	return core.Point{X: float64(x) + 0.5, Y: float64(y)*2 + 1}
}

func findTarget(targets []Target, id string) (int, bool) {
	for i := range targets {
		if targets[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func removeTarget(targets []Target, idx int) []Target {
	out := make([]Target, 0, len(targets)-1)
	out = append(out, targets[:idx]...)
	return append(out, targets[idx+1:]...)
}
