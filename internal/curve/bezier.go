// Package curve tessellates the vector shapes brandkit draws: quadratic
// Bezier arcs, the almond-shaped eye outline, and the rectangle, ellipse and
// rounded-rectangle primitives. Everything here is pure; the same inputs
// always produce the same point sequence.
package curve

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// DefaultSteps is the number of segments used for each Bezier arc.
const DefaultSteps = 80

// Point is a position in pixel or design-grid space.
type Point = vec.Vec2

// Path is an ordered polygon outline. The last point connects back to the
// first when the path is filled.
type Path []Point

// QuadraticBezier evaluates the quadratic Bezier curve p0, ctrl, p2 at steps+1
// uniformly spaced parameter values. The first point is p0 and the last is p2.
// A steps value below 1 is treated as 1.
func QuadraticBezier(p0, ctrl, p2 Point, steps int) Path {
	if steps < 1 {
		steps = 1
	}
	pts := make(Path, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		u := 1 - t
		pts[i] = p0.Mul(u * u).Add(ctrl.Mul(2 * u * t)).Add(p2.Mul(t * t))
	}
	pts[0], pts[steps] = p0, p2
	return pts
}

// Bounds returns the smallest axis-aligned box containing every point of p.
// An empty path yields two zero points.
func (p Path) Bounds() (lo, hi Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	lo, hi = p[0], p[0]
	for _, q := range p[1:] {
		lo.X = math.Min(lo.X, q.X)
		lo.Y = math.Min(lo.Y, q.Y)
		hi.X = math.Max(hi.X, q.X)
		hi.Y = math.Max(hi.Y, q.Y)
	}
	return lo, hi
}

// Reverse returns a copy of p with the point order reversed. Filling a
// reversed path inside another one cuts a hole.
func (p Path) Reverse() Path {
	out := make(Path, len(p))
	for i, q := range p {
		out[len(p)-1-i] = q
	}
	return out
}

// Translate returns p shifted by d.
func (p Path) Translate(d Point) Path {
	out := make(Path, len(p))
	for i, q := range p {
		out[i] = q.Add(d)
	}
	return out
}
