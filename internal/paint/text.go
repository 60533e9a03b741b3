package paint

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DrawText draws s with its left edge at x and its ascender line at top; the
// glyph baseline sits at top plus the face's ascent.
func (c *Canvas) DrawText(face font.Face, x, top int, s string, col color.NRGBA) {
	if s == "" || col.A == 0 {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(top) + face.Metrics().Ascent},
	}
	d.DrawString(s)
}

// MeasureText returns the advance width of s in whole pixels, rounded up.
func MeasureText(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// RightAlignX returns the x at which s must start so that its right edge
// sits margin pixels from the right edge of a width-pixel canvas.
func RightAlignX(width, margin int, face font.Face, s string) int {
	return width - margin - MeasureText(face, s)
}
