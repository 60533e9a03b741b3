package paint

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/subtxtpress/brandkit/internal/curve"
)

// FillPath fills the closed outline p with col, anti-aliased.
func (c *Canvas) FillPath(p curve.Path, col color.NRGBA) {
	c.fillPaths(col, p)
}

// FillEllipse fills the ellipse centered at (cx, cy).
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, col color.NRGBA) {
	c.fillPaths(col, curve.Ellipse(cx, cy, rx, ry))
}

// FillCircle fills the circle centered at (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	c.fillPaths(col, curve.Circle(cx, cy, r))
}

// FillRoundedRect fills the rounded rectangle from (x0, y0) to (x1, y1).
func (c *Canvas) FillRoundedRect(x0, y0, x1, y1, radius float64, col color.NRGBA) {
	c.fillPaths(col, curve.RoundedRect(x0, y0, x1, y1, radius))
}

// StrokeRoundedRect draws the outline of a rounded rectangle. The stroke lies
// inside the box and is width pixels wide.
func (c *Canvas) StrokeRoundedRect(x0, y0, x1, y1, radius, width float64, col color.NRGBA) {
	outer := curve.RoundedRect(x0, y0, x1, y1, radius)
	inner := curve.RoundedRect(x0+width, y0+width, x1-width, y1-width, math.Max(radius-width, 0))
	c.fillPaths(col, outer, inner.Reverse())
}

// fillPaths rasterizes the subpaths together (nonzero winding) and blends col
// through the resulting coverage. Rasterization is limited to the part of the
// paths' bounding box that lies on the canvas.
func (c *Canvas) fillPaths(col color.NRGBA, paths ...curve.Path) {
	if col.A == 0 {
		return
	}
	box, ok := c.pathBox(paths)
	if !ok {
		return
	}
	r := rasterize(box, paths)
	r.Draw(c.img, box, image.NewUniform(col), image.Point{})
}

// pathBox returns the integer bounding box of paths clipped to the canvas.
func (c *Canvas) pathBox(paths []curve.Path) (image.Rectangle, bool) {
	var box image.Rectangle
	for _, p := range paths {
		if len(p) < 3 {
			continue
		}
		lo, hi := p.Bounds()
		b := image.Rect(
			int(math.Floor(lo.X)), int(math.Floor(lo.Y)),
			int(math.Ceil(hi.X)), int(math.Ceil(hi.Y)),
		)
		box = box.Union(b)
	}
	box = box.Intersect(c.img.Bounds())
	return box, !box.Empty()
}

// rasterize builds a vector rasterizer sized to box with every subpath
// clipped to it and translated into box-local coordinates.
func rasterize(box image.Rectangle, paths []curve.Path) *vector.Rasterizer {
	r := vector.NewRasterizer(box.Dx(), box.Dy())
	shift := curve.Point{X: -float64(box.Min.X), Y: -float64(box.Min.Y)}
	w, h := float64(box.Dx()), float64(box.Dy())
	for _, p := range paths {
		q := clipPolygon(p.Translate(shift), w, h)
		if len(q) < 3 {
			continue
		}
		r.MoveTo(float32(q[0].X), float32(q[0].Y))
		for _, pt := range q[1:] {
			r.LineTo(float32(pt.X), float32(pt.Y))
		}
		r.ClosePath()
	}
	return r
}

// clipPolygon clips p to the rectangle [0,w]x[0,h] (Sutherland-Hodgman).
// The clip window is convex, so the covered area inside it is unchanged.
func clipPolygon(p curve.Path, w, h float64) curve.Path {
	type edge struct {
		inside func(curve.Point) bool
		cross  func(a, b curve.Point) curve.Point
	}
	atX := func(x float64) func(a, b curve.Point) curve.Point {
		return func(a, b curve.Point) curve.Point {
			t := (x - a.X) / (b.X - a.X)
			return curve.Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
		}
	}
	atY := func(y float64) func(a, b curve.Point) curve.Point {
		return func(a, b curve.Point) curve.Point {
			t := (y - a.Y) / (b.Y - a.Y)
			return curve.Point{X: a.X + t*(b.X-a.X), Y: y}
		}
	}
	edges := [4]edge{
		{func(q curve.Point) bool { return q.X >= 0 }, atX(0)},
		{func(q curve.Point) bool { return q.X <= w }, atX(w)},
		{func(q curve.Point) bool { return q.Y >= 0 }, atY(0)},
		{func(q curve.Point) bool { return q.Y <= h }, atY(h)},
	}

	out := p
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = make(curve.Path, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

// ApplyMask rasterizes mask (in layer-local coordinates) into an opacity map
// scaled by alpha/255 and multiplies the layer's pixels by it. Areas the mask
// does not cover become fully transparent.
func ApplyMask(l *Layer, mask curve.Path, alpha uint8) {
	b := l.img.Bounds()
	cov := image.NewAlpha(b)
	if len(mask) >= 3 && alpha > 0 {
		r := rasterize(b, []curve.Path{mask})
		r.Draw(cov, b, image.Opaque, image.Point{})
	}

	pix := l.img.Pix
	for y := range b.Dy() {
		for x := range b.Dx() {
			f := uint32(cov.Pix[y*cov.Stride+x]) * uint32(alpha)
			i := y*l.img.Stride + 4*x
			for k := range 4 {
				pix[i+k] = uint8(uint32(pix[i+k]) * f / (255 * 255)) //nolint:gosec // G115: f <= 255*255
			}
		}
	}
}
