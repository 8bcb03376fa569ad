package pop

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pop-arcade/internal/core"
)

// Shape is the outline of a target.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeTriangle
	ShapeStar
	ShapePentagon
	ShapeHexagon
	ShapeDiamond
)

// AllShapes lists every shape in declaration order.
func AllShapes() []Shape {
	return []Shape{
		ShapeCircle, ShapeSquare, ShapeTriangle, ShapeStar,
		ShapePentagon, ShapeHexagon, ShapeDiamond,
	}
}

// String returns the config name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	case ShapeTriangle:
		return "triangle"
	case ShapeStar:
		return "star"
	case ShapePentagon:
		return "pentagon"
	case ShapeHexagon:
		return "hexagon"
	case ShapeDiamond:
		return "diamond"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Label returns the three-letter HUD label.
func (s Shape) Label() string {
	switch s {
	case ShapeCircle:
		return "CIR"
	case ShapeSquare:
		return "SQR"
	case ShapeTriangle:
		return "TRI"
	case ShapeStar:
		return "STR"
	case ShapePentagon:
		return "PEN"
	case ShapeHexagon:
		return "HEX"
	case ShapeDiamond:
		return "DIA"
	default:
		return "???"
	}
}

// Glyph returns the rune used to fill the shape on a terminal.
func (s Shape) Glyph() rune {
	switch s {
	case ShapeCircle:
		return '●'
	case ShapeSquare:
		return '■'
	case ShapeTriangle:
		return '▲'
	case ShapeStar:
		return '★'
	case ShapePentagon:
		return '⬟'
	case ShapeHexagon:
		return '⬢'
	case ShapeDiamond:
		return '◆'
	default:
		return '?'
	}
}

// ParseShape maps a config name to a shape.
func ParseShape(name string) (Shape, error) {
	for _, s := range AllShapes() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

// Vertices returns the outline of the shape on the unit circle, y pointing
// down, starting at the top. Circles have no vertices.
func (s Shape) Vertices() []core.Point {
	switch s {
	case ShapeCircle:
		return nil
	case ShapeSquare:
		const h = 0.8
		return []core.Point{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
	case ShapeTriangle:
		return regularPolygon(3, 1, 0)
	case ShapeStar:
		return starPolygon(5, 1, 0.45)
	case ShapePentagon:
		return regularPolygon(5, 1, 0)
	case ShapeHexagon:
		return regularPolygon(6, 1, math.Pi/6)
	case ShapeDiamond:
		return []core.Point{{X: 0, Y: -1}, {X: 0.8, Y: 0}, {X: 0, Y: 1}, {X: -0.8, Y: 0}}
	default:
		return nil
	}
}

// Contains reports whether the unit-space point (u, v) lies inside the
// shape. Both coordinates are relative to the center, radius 1.
func (s Shape) Contains(u, v float64) bool {
	if s == ShapeCircle {
		return u*u+v*v <= 1
	}
	return insidePolygon(s.Vertices(), u, v)
}

func regularPolygon(n int, r, rot float64) []core.Point {
	pts := make([]core.Point, n)
	for i := range pts {
		a := -math.Pi/2 + rot + float64(i)*2*math.Pi/float64(n)
		pts[i] = core.Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return pts
}

func starPolygon(points int, outer, inner float64) []core.Point {
	pts := make([]core.Point, points*2)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/float64(points)
		pts[i] = core.Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return pts
}

// insidePolygon is the even-odd ray casting test.
func insidePolygon(poly []core.Point, x, y float64) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}
