// Package paint implements the raster side of brandkit: colors, gradient
// fills, canvases, staging layers, masks and primitive draws.
package paint

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an opaque RGB triple. Alpha is supplied separately when a color is
// used on a layer, see Color.Alpha.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color, clamping each channel to [0,255].
func RGB(r, g, b int) Color {
	return Color{R: clampByte(r), G: clampByte(g), B: clampByte(b)}
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: want 6 digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil //nolint:gosec // G115: masked to 8 bits
}

// Hex formats c as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Alpha pairs c with a straight (non-premultiplied) alpha value.
func (c Color) Alpha(a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Opaque is shorthand for c.Alpha(255).
func (c Color) Opaque() color.NRGBA {
	return c.Alpha(255)
}

// ScaleAlpha multiplies a by f, truncating and clamping to [0,255].
func ScaleAlpha(a uint8, f float64) uint8 {
	return clampByte(int(float64(a) * f))
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v) //nolint:gosec // G115: clamped above
}
