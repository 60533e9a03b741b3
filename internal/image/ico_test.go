package image

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestEncodeICO_Layout(t *testing.T) {
	data := makeICO(t, 32, 16)

	// ICONDIR: reserved, type 1, count 2.
	if got := data[:6]; !bytes.Equal(got, []byte{0, 0, 1, 0, 2, 0}) {
		t.Fatalf("header = % x", got)
	}

	entries, err := ReadICO(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadICO: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	wantOffset := 6 + 16*2
	for i, want := range []int{32, 16} {
		e := entries[i]
		if e.Width != want || e.Height != want {
			t.Errorf("entry %d is %dx%d, want %dx%d", i, e.Width, e.Height, want, want)
		}
		if e.BitCount != 32 {
			t.Errorf("entry %d bit count = %d, want 32", i, e.BitCount)
		}
		if e.Offset != wantOffset {
			t.Errorf("entry %d offset = %d, want %d", i, e.Offset, wantOffset)
		}
		wantOffset += e.Size

		img, err := png.Decode(bytes.NewReader(data[e.Offset : e.Offset+e.Size]))
		if err != nil {
			t.Fatalf("entry %d payload: %v", i, err)
		}
		if b := img.Bounds(); b.Dx() != want || b.Dy() != want {
			t.Errorf("entry %d payload is %v", i, b)
		}
	}
	if wantOffset != len(data) {
		t.Errorf("payloads end at %d, file is %d bytes", wantOffset, len(data))
	}
}

func TestEncodeICO_256(t *testing.T) {
	data := makeICO(t, 256)
	// A stored width of 0 means 256.
	if data[6] != 0 || data[7] != 0 {
		t.Errorf("stored size = %d x %d, want 0 x 0", data[6], data[7])
	}
}

func TestEncodeICO_Invalid(t *testing.T) {
	tests := []struct {
		name string
		imgs []image.Image
	}{
		{"none", nil},
		{"too large", []image.Image{makeRGBA(257, 257, 255)}},
		{"empty", []image.Image{image.NewRGBA(image.Rect(0, 0, 0, 0))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodeICO(&buf, tt.imgs); err == nil {
				t.Error("expected error")
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %d bytes on error", buf.Len())
			}
		})
	}
}

func TestReadICO_Truncated(t *testing.T) {
	data := makeICO(t, 32, 16)
	if _, err := ReadICO(bytes.NewReader(data[:20])); err == nil {
		t.Error("expected error for truncated directory")
	}
}
