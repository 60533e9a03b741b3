package image

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
	icoMaxSide    = 256
)

// ICOEntry is one directory record of an ICO container.
type ICOEntry struct {
	Width    int
	Height   int
	BitCount int
	Size     int // payload bytes
	Offset   int // payload position from the start of the file
}

type icoDirEntry struct {
	Width, Height uint8 // 0 means 256
	Colors        uint8
	Reserved      uint8
	Planes        uint16
	BitCount      uint16
	Size          uint32
	Offset        uint32
}

// EncodeICO writes imgs to w as an ICO container with one PNG-compressed
// entry per image, in the given order.
func EncodeICO(w io.Writer, imgs []image.Image) error {
	if len(imgs) == 0 {
		return fmt.Errorf("encoding ico: no images")
	}

	payloads := make([][]byte, len(imgs))
	for i, img := range imgs {
		b := img.Bounds()
		if b.Dx() < 1 || b.Dy() < 1 || b.Dx() > icoMaxSide || b.Dy() > icoMaxSide {
			return fmt.Errorf("encoding ico: entry %d is %dx%d, want 1..%d", i, b.Dx(), b.Dy(), icoMaxSide)
		}
		var buf bytes.Buffer
		if err := EncodePNG(&buf, img); err != nil {
			return fmt.Errorf("encoding ico entry %d: %w", i, err)
		}
		payloads[i] = buf.Bytes()
	}

	var out bytes.Buffer
	_ = binary.Write(&out, binary.LittleEndian, [3]uint16{0, 1, uint16(len(imgs))})

	offset := uint32(icoHeaderSize + icoEntrySize*len(imgs))
	for i, img := range imgs {
		b := img.Bounds()
		_ = binary.Write(&out, binary.LittleEndian, icoDirEntry{
			Width:    uint8(b.Dx() % icoMaxSide),
			Height:   uint8(b.Dy() % icoMaxSide),
			Planes:   1,
			BitCount: 32,
			Size:     uint32(len(payloads[i])),
			Offset:   offset,
		})
		offset += uint32(len(payloads[i]))
	}
	for _, p := range payloads {
		out.Write(p)
	}

	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("writing ico: %w", err)
	}
	return nil
}

// ReadICO parses the header and directory of an ICO container.
func ReadICO(r io.Reader) ([]ICOEntry, error) {
	var hdr [3]uint16
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("reading ico header: %w", err)
	}
	if hdr[0] != 0 || hdr[1] != 1 || hdr[2] == 0 {
		return nil, fmt.Errorf("%w: bad ico header", ErrUnsupportedFormat)
	}

	entries := make([]ICOEntry, hdr[2])
	for i := range entries {
		var d icoDirEntry
		if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
			return nil, fmt.Errorf("reading ico entry %d: %w", i, err)
		}
		entries[i] = ICOEntry{
			Width:    side(d.Width),
			Height:   side(d.Height),
			BitCount: int(d.BitCount),
			Size:     int(d.Size),
			Offset:   int(d.Offset),
		}
	}
	return entries, nil
}

func side(v uint8) int {
	if v == 0 {
		return icoMaxSide
	}
	return int(v)
}
