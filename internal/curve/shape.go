package curve

import "math"

// Rect returns the axis-aligned rectangle outline from (x0, y0) to (x1, y1).
func Rect(x0, y0, x1, y1 float64) Path {
	return Path{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// Ellipse returns a polygonal ellipse centered at (cx, cy). The segment count
// grows with the radius so large washes stay smooth and small glints stay
// cheap.
func Ellipse(cx, cy, rx, ry float64) Path {
	if rx <= 0 || ry <= 0 {
		return nil
	}
	// A multiple of four puts vertices on both axes, so the polygon spans the
	// full 2rx x 2ry box.
	n := (arcSegments(math.Max(rx, ry), 2*math.Pi) + 3) / 4 * 4
	out := make(Path, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	return out
}

// Circle is Ellipse with equal radii.
func Circle(cx, cy, r float64) Path {
	return Ellipse(cx, cy, r, r)
}

// RoundedRect returns a rectangle outline with circular corners of radius r.
// The radius is clamped to half the shorter side; r <= 0 yields Rect.
func RoundedRect(x0, y0, x1, y1, r float64) Path {
	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return nil
	}
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return Rect(x0, y0, x1, y1)
	}

	corners := [4]struct {
		cx, cy, start float64
	}{
		{x1 - r, y0 + r, -math.Pi / 2}, // top right
		{x1 - r, y1 - r, 0},            // bottom right
		{x0 + r, y1 - r, math.Pi / 2},  // bottom left
		{x0 + r, y0 + r, math.Pi},      // top left
	}
	n := arcSegments(r, math.Pi/2)
	out := make(Path, 0, 4*(n+1))
	for _, c := range corners {
		for i := 0; i <= n; i++ {
			a := c.start + math.Pi/2*float64(i)/float64(n)
			out = append(out, Point{X: c.cx + r*math.Cos(a), Y: c.cy + r*math.Sin(a)})
		}
	}
	return out
}

// arcSegments picks a segment count so each chord is about two pixels long,
// bounded to keep tiny arcs closed and huge arcs affordable.
func arcSegments(r, sweep float64) int {
	n := int(math.Ceil(r * sweep / 2))
	lo := int(math.Ceil(sweep / (math.Pi / 8)))
	return min(max(n, lo), 512)
}
