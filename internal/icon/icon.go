// Package icon renders the rounded-square application icon at each target
// size, drawing the eye motif as vectors at every resolution instead of
// scaling a bitmap.
package icon

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/subtxtpress/brandkit/internal/brand"
	"github.com/subtxtpress/brandkit/internal/curve"
	"github.com/subtxtpress/brandkit/internal/motif"
	"github.com/subtxtpress/brandkit/internal/paint"
)

// Sizes are the icon edge lengths produced on every run.
var Sizes = []int{16, 32, 180, 192, 512}

// FaviconSizes are the renders packed into favicon.ico, largest first.
var FaviconSizes = []int{32, 16}

const (
	designRadius = 72 // corner radius on the 512-unit grid
	minRadius    = 2
	paddingRatio = 0.1
)

// Icon is one rendered size.
type Icon struct {
	Size   int
	Canvas *paint.Canvas
}

// CornerRadius returns the background corner radius for an icon of the given
// size: the design radius scaled to size and rounded, never below 2 px.
func CornerRadius(size int) int {
	r := int(math.Round(float64(size) * designRadius / curve.DesignGrid))
	return max(r, minRadius)
}

// Layout returns the transform that fits the design grid inside a 10%
// padding and centers it on a size x size canvas.
func Layout(size int) curve.Transform {
	s := float64(size)
	pad := paddingRatio * s
	inner := s - 2*pad
	off := (s - inner) / 2
	return curve.Fit(inner, off, off)
}

// Render draws one icon onto a fresh size x size canvas.
func Render(size int, b brand.Brand) *paint.Canvas {
	c := paint.NewCanvas(size, size)
	s := float64(size)
	c.FillRoundedRect(0, 0, s, s, float64(CornerRadius(size)), b.Palette.Base.Opaque())
	motif.Draw(c, b.Palette, Layout(size), motif.Options{Alpha: 255})
	return c
}

// Build renders every size concurrently. Each size gets its own canvas, so
// no state is shared between workers. The result follows the order of sizes.
func Build(ctx context.Context, sizes []int, b brand.Brand) ([]Icon, error) {
	for _, s := range sizes {
		if s <= 0 {
			return nil, fmt.Errorf("invalid icon size %d", s)
		}
	}

	icons := make([]Icon, len(sizes))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range sizes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			icons[i] = Icon{Size: s, Canvas: Render(s, b)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return icons, nil
}

// FaviconFrames picks the FaviconSizes renders out of icons, in
// FaviconSizes order.
func FaviconFrames(icons []Icon) ([]Icon, error) {
	bySize := make(map[int]Icon, len(icons))
	for _, ic := range icons {
		bySize[ic.Size] = ic
	}
	frames := make([]Icon, 0, len(FaviconSizes))
	for _, s := range FaviconSizes {
		ic, ok := bySize[s]
		if !ok {
			return nil, fmt.Errorf("favicon needs a %dx%d render", s, s)
		}
		frames = append(frames, ic)
	}
	return frames, nil
}
