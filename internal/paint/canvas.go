package paint

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Canvas is a fixed-size raster owned by one builder. Pixels are stored
// premultiplied so source-over merges stay exact.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a fully transparent w x h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// NewFilledCanvas allocates a w x h canvas filled with the opaque color c.
func NewFilledCanvas(w, h int, c Color) *Canvas {
	cv := NewCanvas(w, h)
	draw.Draw(cv.img, cv.img.Bounds(), image.NewUniform(c.Opaque()), image.Point{}, draw.Src)
	return cv
}

// Bounds returns the canvas rectangle, always anchored at the origin.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Image exposes the backing raster for encoders. Callers must not retain it
// while the canvas is still being drawn on.
func (c *Canvas) Image() *image.RGBA { return c.img }

// At returns the straight-alpha color at (x, y).
func (c *Canvas) At(x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(c.img.RGBAAt(x, y)).(color.NRGBA)
}

// Fill blends col over the whole canvas.
func (c *Canvas) Fill(col color.NRGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Over)
}

// FillRect blends col over r. Parts of r outside the canvas are ignored.
func (c *Canvas) FillRect(r image.Rectangle, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// AlphaComposite blends the whole of src over c, scaling every src pixel's
// alpha by opacity/255. src is composited as a unit, so overlapping shapes
// inside it keep their full internal detail and are dimmed together.
func (c *Canvas) AlphaComposite(src *Canvas, opacity uint8) error {
	if src.Bounds() != c.Bounds() {
		return fmt.Errorf("alpha composite: size mismatch %v vs %v", src.Bounds(), c.Bounds())
	}
	if opacity == 0 {
		return nil
	}
	mask := image.NewUniform(color.Alpha{A: opacity})
	draw.DrawMask(c.img, c.img.Bounds(), src.img, image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

// Layer is a transparent staging canvas positioned at an origin on its
// parent. It is painted, merged exactly once, then dropped.
type Layer struct {
	Canvas
	origin image.Point
	merged bool
}

// NewLayer allocates a transparent layer covering r in parent coordinates.
func NewLayer(r image.Rectangle) *Layer {
	return &Layer{
		Canvas: Canvas{img: image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))},
		origin: r.Min,
	}
}

// Origin returns the layer's top-left corner in parent coordinates.
func (l *Layer) Origin() image.Point { return l.origin }

// Merge composites l source-over onto c at the layer's origin. Pixels that
// fall outside c are clipped. Merging the same layer twice panics.
func (c *Canvas) Merge(l *Layer) {
	if l.merged {
		panic("paint: layer merged twice")
	}
	l.merged = true
	dr := image.Rectangle{Min: l.origin, Max: l.origin.Add(l.img.Bounds().Size())}
	draw.Draw(c.img, dr, l.img, image.Point{}, draw.Over)
}
