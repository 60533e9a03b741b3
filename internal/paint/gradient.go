package paint

import (
	"image"
	"image/color"
	"math"

	"github.com/subtxtpress/brandkit/internal/curve"
)

// circlePad is the extra room around a gradient circle's staging layer so
// the anti-aliased rim is not cut off.
const circlePad = 4

// Lerp interpolates each channel of c0 and c1 independently. t is clamped to
// [0,1] and channels are truncated toward zero, so Lerp(c0, c1, 0) == c0,
// Lerp(c0, c1, 1) == c1 and every channel lies between its endpoints.
func Lerp(c0, c1 Color, t float64) Color {
	t = math.Max(0, math.Min(1, t))
	return Color{
		R: lerpChannel(c0.R, c1.R, t),
		G: lerpChannel(c0.G, c1.G, t),
		B: lerpChannel(c0.B, c1.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	if a == b {
		return a
	}
	v := int(float64(a)*(1-t) + float64(b)*t)
	lo, hi := int(min(a, b)), int(max(a, b))
	return clampByte(min(max(v, lo), hi))
}

// Orientation selects the axis a gradient varies along.
type Orientation int

// Gradient orientations.
const (
	Horizontal Orientation = iota
	Vertical
	Radial
)

// GradientSpec describes a two-stop gradient at a uniform alpha. It holds no
// state and can be reused across draws.
type GradientSpec struct {
	From, To    Color
	Orientation Orientation
	Alpha       uint8
}

// At returns the gradient color at fraction t with g.Alpha.
func (g GradientSpec) At(t float64) color.NRGBA {
	return Lerp(g.From, g.To, t).Alpha(g.Alpha)
}

// FillRect paints the gradient over r on a staging layer and merges it onto
// dst source-over. Empty rectangles are ignored.
func (g GradientSpec) FillRect(dst *Canvas, r image.Rectangle) {
	if r.Empty() {
		return
	}
	l := NewLayer(r)
	g.paint(l)
	dst.Merge(l)
}

// FillCircle paints the gradient left to right across a square layer around
// (cx, cy), masks it to a circle of radius r at g.Alpha and merges it onto
// dst. g.Orientation is ignored. Non-positive radii are ignored.
func (g GradientSpec) FillCircle(dst *Canvas, cx, cy, r float64) {
	if r <= 0 {
		return
	}
	ir := int(r)
	side := 2*ir + circlePad
	origin := image.Pt(int(cx)-ir-circlePad/2, int(cy)-ir-circlePad/2)
	l := NewLayer(image.Rectangle{Min: origin, Max: origin.Add(image.Pt(side, side))})

	opaque := g
	opaque.Alpha = 255
	opaque.Orientation = Horizontal
	opaque.paint(l)

	half := float64(side) / 2
	ApplyMask(l, curve.Circle(half, half, r), g.Alpha)
	dst.Merge(l)
}

// paint fills the whole layer, one scanline per step along the varying axis.
func (g GradientSpec) paint(l *Layer) {
	w, h := l.Width(), l.Height()
	switch g.Orientation {
	case Vertical:
		den := float64(max(h-1, 1))
		for y := range h {
			c := premul(g.At(float64(y) / den))
			for x := range w {
				l.img.SetRGBA(x, y, c)
			}
		}
	case Radial:
		cx, cy := float64(w)/2, float64(h)/2
		reach := math.Max(math.Hypot(cx, cy), 1)
		for y := range h {
			for x := range w {
				d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
				l.img.SetRGBA(x, y, premul(g.At(d/reach)))
			}
		}
	default:
		den := float64(max(w-1, 1))
		for x := range w {
			c := premul(g.At(float64(x) / den))
			for y := range h {
				l.img.SetRGBA(x, y, c)
			}
		}
	}
}

func premul(c color.NRGBA) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}
