package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Supported image format names.
const (
	FormatPNG = "png"
	FormatICO = "ico"
)

// ErrUnsupportedFormat is returned for data that is neither PNG nor ICO.
var ErrUnsupportedFormat = errors.New("unsupported image format")

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// DetectFormat reads the first bytes from r to identify the image format.
// Returns "png" or "ico". The returned reader replays the consumed bytes.
func DetectFormat(r io.Reader) (format string, replay io.Reader, err error) {
	// 8 bytes covers the PNG signature and the ICO header's first fields.
	buf := make([]byte, 8)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("reading header: %w", err)
	}
	buf = buf[:n]

	replay = io.MultiReader(bytes.NewReader(buf), r)

	if n == len(pngMagic) && bytes.Equal(buf, pngMagic) {
		return FormatPNG, replay, nil
	}
	// ICONDIR: reserved 0, type 1, count > 0.
	if n >= 6 && buf[0] == 0 && buf[1] == 0 && buf[2] == 1 && buf[3] == 0 && (buf[4] != 0 || buf[5] != 0) {
		return FormatICO, replay, nil
	}

	return "", replay, ErrUnsupportedFormat
}

// GetDimensions reads width and height without decoding pixels. For an ICO
// container it reports the first (largest) entry.
func GetDimensions(r io.Reader) (width, height int, err error) {
	format, replay, err := DetectFormat(r)
	if err != nil {
		return 0, 0, err
	}
	if format == FormatICO {
		entries, err := ReadICO(replay)
		if err != nil {
			return 0, 0, err
		}
		return entries[0].Width, entries[0].Height, nil
	}
	cfg, err := png.DecodeConfig(replay)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Flatten composites src over an opaque bg and returns an image with every
// alpha at 255. The PNG encoder writes such images without an alpha channel.
func Flatten(src image.Image, bg color.Color) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(opaque(bg)), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	return dst
}

func opaque(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: 0xffff}
}

// IsOpaque reports whether every pixel of img has full alpha.
func IsOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

var pngEncoder = &png.Encoder{CompressionLevel: png.BestCompression}

// EncodePNG writes img to w as a maximally compressed PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := pngEncoder.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// encode returns img in the named format. ICO output holds img as its only
// entry.
func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatPNG:
		if err := EncodePNG(&buf, img); err != nil {
			return nil, err
		}
	case FormatICO:
		if err := EncodeICO(&buf, []image.Image{img}); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return buf.Bytes(), nil
}
