// Package core provides fundamental types and utilities shared by Pop-a-Lot modes.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned cell rectangle used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Point is a position in continuous viewport units.
type Point struct {
	X, Y float64
}

// Dist returns the euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Zone is an axis-aligned rectangle in viewport units.
// Bounds are inclusive on every side.
type Zone struct {
	Left, Top, Right, Bottom float64
}

// Contains reports whether p lies inside the zone, edges included.
func (z Zone) Contains(p Point) bool {
	return p.X >= z.Left && p.X <= z.Right && p.Y >= z.Top && p.Y <= z.Bottom
}

// ToPct converts a coordinate in viewport units to a 0-100 percentage of dim.
func ToPct(v, dim float64) float64 {
	if dim == 0 {
		return 0
	}
	return v / dim * 100
}

// FromPct converts a 0-100 percentage of dim back to viewport units.
func FromPct(pct, dim float64) float64 {
	return pct / 100 * dim
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
