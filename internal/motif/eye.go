// Package motif draws the brand's eye: an almond outline with a gradient
// iris, a solid pupil and a small glint.
package motif

import (
	"github.com/subtxtpress/brandkit/internal/brand"
	"github.com/subtxtpress/brandkit/internal/curve"
	"github.com/subtxtpress/brandkit/internal/paint"
)

// Sub-element geometry on the 512-unit design grid.
const (
	IrisRadius  = 53
	PupilRadius = 22
	GlintRadius = 8
)

// Glint is the glint's center on the design grid, up and left of the iris
// center.
var Glint = curve.Point{X: 247, Y: 247}

// Options controls a single eye draw.
type Options struct {
	Alpha   uint8
	NoGlint bool
}

// Draw paints the eye onto dst with every element placed by t. All sizes are
// design-grid units, so a larger scale enlarges the whole motif uniformly.
func Draw(dst *paint.Canvas, pal brand.Palette, t curve.Transform, o Options) {
	dst.FillPath(curve.EyePolygon(t), pal.Cream.Alpha(o.Alpha))

	c := t.Apply(curve.EyeCenter)
	pal.IrisGradient(o.Alpha).FillCircle(dst, c.X, c.Y, t.Scalar(IrisRadius))

	dst.FillCircle(c.X, c.Y, t.Scalar(PupilRadius), pal.Base.Alpha(o.Alpha))

	if o.NoGlint {
		return
	}
	g := t.Apply(Glint)
	dst.FillCircle(g.X, g.Y, t.Scalar(GlintRadius), pal.Light.Alpha(paint.ScaleAlpha(o.Alpha, 0.9)))
}
