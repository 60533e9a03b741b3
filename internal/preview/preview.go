// Package preview assembles the 1280x720 social preview image as an ordered
// list of named drawing steps applied to one canvas.
package preview

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/font"

	"github.com/subtxtpress/brandkit/internal/brand"
	"github.com/subtxtpress/brandkit/internal/curve"
	"github.com/subtxtpress/brandkit/internal/motif"
	"github.com/subtxtpress/brandkit/internal/paint"
	"github.com/subtxtpress/brandkit/internal/typeface"
)

// Canvas size.
const (
	Width  = 1280
	Height = 720
)

// Layout constants, in pixels.
const (
	ContentX   = 80 // left edge of the text block
	SiteMargin = 80 // right margin of the site label

	washRings = 120
	washAlpha = 55
	washGamma = 1.4
	washPitch = 8

	barHeight = 5

	scanPitch  = 4
	scanOffset = 3
	scanAlpha  = 10

	watermarkWidth   = 200
	watermarkRight   = 72
	watermarkTop     = 48
	watermarkOpacity = 45

	gridRight  = 80
	cellSize   = 32
	cellPitch  = 42
	cellRadius = 3
)

// Faces are the resolved fonts the text steps draw with.
type Faces struct {
	Headline font.Face
	Body     font.Face
	Mono     font.Face
}

// ResolveFaces looks up every face the preview needs.
func ResolveFaces(r *typeface.Resolver, f brand.Fonts) Faces {
	return Faces{
		Headline: r.Face(f.Headline),
		Body:     r.Face(f.Body),
		Mono:     r.Face(f.Mono),
	}
}

// Step is one self-contained draw onto the shared canvas.
type Step struct {
	Name string
	Draw func(c *paint.Canvas) error
}

// Steps returns the preview's drawing steps in compositing order. Later steps
// cover earlier ones where they are opaque.
func Steps(b brand.Brand, f Faces) []Step {
	pal := b.Palette
	return []Step{
		{"base", func(c *paint.Canvas) error {
			c.Fill(pal.Base.Opaque())
			return nil
		}},
		{"wash", func(c *paint.Canvas) error {
			drawWash(c, pal.Second)
			return nil
		}},
		{"accent-bar", func(c *paint.Canvas) error {
			pal.IrisGradient(255).FillRect(c, image.Rect(0, 0, Width, barHeight))
			return nil
		}},
		{"scanlines", func(c *paint.Canvas) error {
			for y := scanOffset; y < Height; y += scanPitch {
				c.FillRect(image.Rect(0, y, Width, y+1), pal.Second.Alpha(scanAlpha))
			}
			return nil
		}},
		{"watermark", func(c *paint.Canvas) error {
			return drawWatermark(c, pal)
		}},
		{"grid", func(c *paint.Canvas) error {
			for _, cell := range Cells() {
				drawCell(c, pal, cell)
			}
			return nil
		}},
		{"subhead", func(c *paint.Canvas) error {
			y := subheadY()
			c.FillRect(image.Rect(ContentX, y-10, ContentX+4, y+13), pal.Silver.Alpha(200))
			c.DrawText(f.Body, ContentX+16, y-2, b.Copy.Subhead, pal.Silver.Alpha(165))
			return nil
		}},
		{"headline", func(c *paint.Canvas) error {
			c.DrawText(f.Headline, ContentX, headlineY(), b.Copy.Headline, pal.Silver.Opaque())
			return nil
		}},
		{"eyebrow", func(c *paint.Canvas) error {
			y := eyebrowY()
			c.FillCircle(ContentX+4, float64(y)+5, 4, pal.Silver.Alpha(200))
			c.DrawText(f.Mono, ContentX+16, y, b.EyebrowText(), pal.Cream.Opaque())
			return nil
		}},
		{"site-label", func(c *paint.Canvas) error {
			x := SiteLabelX(f.Mono, b.Copy.Site)
			c.DrawText(f.Mono, x, Height-72, b.Copy.Site, pal.Silver.Alpha(90))
			return nil
		}},
	}
}

// Render applies steps in order to a fresh canvas.
func Render(steps []Step) (*paint.Canvas, error) {
	c := paint.NewCanvas(Width, Height)
	for _, s := range steps {
		if err := s.Draw(c); err != nil {
			return nil, fmt.Errorf("preview step %s: %w", s.Name, err)
		}
	}
	return c, nil
}

// Build renders the preview for b.
func Build(b brand.Brand, f Faces) (*paint.Canvas, error) {
	return Render(Steps(b, f))
}

// SiteLabelX returns the left edge of the site label so that its right edge
// sits SiteMargin pixels from the canvas edge.
func SiteLabelX(face font.Face, site string) int {
	return paint.RightAlignX(Width, SiteMargin, face, site)
}

func subheadY() int  { return Height - 72 }
func headlineY() int { return subheadY() - 100 }
func eyebrowY() int  { return headlineY() - 40 }

// drawWash stacks concentric circles anchored off the top-left corner,
// largest first. Each ring adds color, so the wash deepens toward the corner.
func drawWash(c *paint.Canvas, col paint.Color) {
	for i := washRings; i > 0; i-- {
		a := uint8(washAlpha * math.Pow(float64(i)/washRings, washGamma))
		r := float64(i * washPitch)
		// Bounding box (-r/2, -r/2)..(r, r).
		c.FillCircle(r/4, r/4, 3*r/4, col.Alpha(a))
	}
}

// WatermarkTransform scales the design grid to watermarkWidth pixels and puts
// the eye's left tip watermarkWidth+watermarkRight pixels from the right edge.
func WatermarkTransform() curve.Transform {
	scale := float64(watermarkWidth) / curve.DesignGrid
	return curve.Fit(watermarkWidth, Width-watermarkRight-watermarkWidth-curve.EyeLeft.X*scale, watermarkTop)
}

// drawWatermark draws the eye at full strength on its own canvas and dims
// the result as a whole, so the motif's parts do not show through each other.
func drawWatermark(c *paint.Canvas, pal brand.Palette) error {
	stage := paint.NewCanvas(Width, Height)
	motif.Draw(stage, pal, WatermarkTransform(), motif.Options{Alpha: 255, NoGlint: true})
	return c.AlphaComposite(stage, watermarkOpacity)
}
