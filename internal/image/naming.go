package image

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FaviconFileName is the legacy icon container written next to the PNG icons.
const FaviconFileName = "favicon.ico"

// IconFileName returns the file name of the size x size PNG icon.
func IconFileName(size int) string {
	return fmt.Sprintf("icon-%d.png", size)
}

// formatExts maps lowercase file extensions to formats.
var formatExts = map[string]string{
	".png": FormatPNG,
	".ico": FormatICO,
}

// FormatForPath returns the format implied by path's extension.
func FormatForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatExts[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}
