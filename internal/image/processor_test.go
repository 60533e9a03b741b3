package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
)

// makeRGBA creates a w x h image with a gradient and the given alpha.
func makeRGBA(w, h int, alpha uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: alpha})
		}
	}
	return img
}

// makePNG creates a PNG-encoded image of the given dimensions.
func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodePNG(&buf, makeRGBA(w, h, 200)); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}

// makeICO creates an ICO container holding one entry per size.
func makeICO(t *testing.T, sizes ...int) []byte {
	t.Helper()
	imgs := make([]image.Image, len(sizes))
	for i, s := range sizes {
		imgs[i] = makeRGBA(s, s, 255)
	}
	var buf bytes.Buffer
	if err := EncodeICO(&buf, imgs); err != nil {
		t.Fatalf("encoding test ico: %v", err)
	}
	return buf.Bytes()
}

func TestDetectFormat_PNG(t *testing.T) {
	data := makePNG(t, 10, 10)
	format, replay, err := DetectFormat(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != FormatPNG {
		t.Errorf("got format %q, want %q", format, FormatPNG)
	}
	// Verify replay is still decodable
	if _, err := png.Decode(replay); err != nil {
		t.Errorf("replay reader should still decode: %v", err)
	}
}

func TestDetectFormat_ICO(t *testing.T) {
	data := makeICO(t, 32, 16)
	format, replay, err := DetectFormat(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != FormatICO {
		t.Errorf("got format %q, want %q", format, FormatICO)
	}
	all, err := io.ReadAll(replay)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(all, data) {
		t.Error("replay reader lost bytes")
	}
}

func TestDetectFormat_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}},
		{"text", []byte("hello, world")},
		{"short", []byte{0x89, 'P'}},
		{"ico with zero entries", []byte{0, 0, 1, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DetectFormat(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("err = %v, want ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestDetectFormat_Empty(t *testing.T) {
	if _, _, err := DetectFormat(bytes.NewReader(nil)); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestGetDimensions(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		w, h int
	}{
		{"png", makePNG(t, 180, 90), 180, 90},
		{"ico", makeICO(t, 32, 16), 32, 32},
		{"ico 256", makeICO(t, 256), 256, 256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := GetDimensions(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("GetDimensions: %v", err)
			}
			if w != tt.w || h != tt.h {
				t.Errorf("got %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{R: 255, A: 128})
	// (2,0) and the rest stay transparent.

	bg := color.RGBA{R: 6, G: 11, B: 20, A: 255}
	out := Flatten(src, bg)

	if !IsOpaque(out) {
		t.Fatal("flattened image is not opaque")
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("opaque pixel = %v", got)
	}
	if got := out.RGBAAt(2, 0); got != bg {
		t.Errorf("transparent pixel = %v, want background %v", got, bg)
	}
	if got := out.RGBAAt(1, 0); got.R <= bg.R || got.R == 255 {
		t.Errorf("half-transparent pixel = %v, want a blend", got)
	}
}

func TestFlatten_EncodesWithoutAlpha(t *testing.T) {
	out := Flatten(makeRGBA(8, 8, 100), color.Black)
	var buf bytes.Buffer
	if err := EncodePNG(&buf, out); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	// The encoder stores opaque images as truecolor, which decodes to RGBA
	// rather than NRGBA.
	if _, ok := img.(*image.RGBA); !ok {
		t.Errorf("decoded %T, want *image.RGBA (no alpha channel)", img)
	}
}

func TestIsOpaque(t *testing.T) {
	if IsOpaque(makeRGBA(3, 3, 254)) {
		t.Error("translucent image reported opaque")
	}
	if !IsOpaque(makeRGBA(3, 3, 255)) {
		t.Error("opaque image reported translucent")
	}
}

func TestEncode_Unsupported(t *testing.T) {
	if _, err := encode(makeRGBA(2, 2, 255), "webp"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}
