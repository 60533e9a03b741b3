package image

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"

	"github.com/subtxtpress/brandkit/internal/filesystem"
)

// Save writes already-encoded image data to path. The data's format must
// match the path's extension. The write is atomic: on failure no partial
// file is left behind and any previous file at path is kept.
func Save(path string, data []byte, logger *slog.Logger) error {
	want, err := FormatForPath(path)
	if err != nil {
		return err
	}

	format, _, err := DetectFormat(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("detecting image format: %w", err)
	}
	if format != want {
		return fmt.Errorf("%s data cannot be saved as %s", format, path)
	}

	if err := filesystem.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Debug("saved image",
		slog.String("path", path),
		slog.String("format", format),
		slog.Int("bytes", len(data)))
	return nil
}

// SaveImage encodes img in the format implied by path's extension and saves
// it.
func SaveImage(path string, img image.Image, logger *slog.Logger) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	data, err := encode(img, format)
	if err != nil {
		return err
	}
	return Save(path, data, logger)
}
