package field

import "math"

// Point is a location in field-local units; (0,0) is the top-left corner
// of the field.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in field-local units.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r. The max edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Outset grows r by dx on both horizontal sides and dy on both vertical
// sides.
func (r Rect) Outset(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

func clampFloat(v, min, max float64) float64 {
	if max < min {
		return min
	}
	return math.Max(min, math.Min(v, max))
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
