// Package typeface resolves font requests to drawable faces. A request that
// names a missing or unreadable font file falls back to one of the Go fonts
// embedded in the binary, so text always renders.
package typeface

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fallback selects the embedded face used when a request's file can't be
// loaded.
type Fallback int

// Embedded fallbacks.
const (
	Regular Fallback = iota
	Bold
	Mono
)

func (f Fallback) String() string {
	switch f {
	case Bold:
		return "go-bold"
	case Mono:
		return "go-mono"
	default:
		return "go-regular"
	}
}

func (f Fallback) ttf() []byte {
	switch f {
	case Bold:
		return gobold.TTF
	case Mono:
		return gomono.TTF
	default:
		return goregular.TTF
	}
}

// Request names a font file, a pixel size and the embedded face to use when
// the file is unavailable. Requests are comparable and used as cache keys.
type Request struct {
	Path     string
	Size     float64
	Fallback Fallback
}

var errNoPath = errors.New("no font path")

// Resolver loads and memoizes faces. It is safe for concurrent use, but the
// faces it returns are not; draw text from one goroutine at a time.
type Resolver struct {
	logger *slog.Logger

	mu     sync.Mutex
	faces  map[Request]font.Face
	warned map[string]bool
}

// NewResolver creates an empty resolver.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{
		logger: logger.With("component", "typeface"),
		faces:  make(map[Request]font.Face),
		warned: make(map[string]bool),
	}
}

// Face returns the face for req, loading it on first use. It never fails:
// unreadable files fall back to the request's embedded face, and if that
// can't be built either, to basicfont.Face7x13.
func (r *Resolver) Face(req Request) font.Face {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.faces[req]; ok {
		return f
	}

	f, err := loadFile(req.Path, req.Size)
	if err != nil {
		if !r.warned[req.Path] {
			r.warned[req.Path] = true
			r.logger.Warn("font unavailable, using embedded fallback",
				slog.String("path", req.Path),
				slog.String("fallback", req.Fallback.String()),
				slog.String("error", err.Error()))
		}
		f = Builtin(req.Fallback, req.Size)
	}
	r.faces[req] = f
	return f
}

// Reset closes and forgets every cached face. Subsequent requests reload
// from disk, which picks up font files installed since the last run.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for req, f := range r.faces {
		_ = f.Close()
		delete(r.faces, req)
	}
	clear(r.warned)
}

// Builtin returns the embedded face for fb at size pixels.
func Builtin(fb Fallback, size float64) font.Face {
	f, err := opentype.Parse(fb.ttf())
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := newFace(f, size)
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// loadFile reads a TrueType/OpenType font or the first font of a collection.
func loadFile(path string, size float64) (font.Face, error) {
	if path == "" {
		return nil, errNoPath
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: font path comes from operator config
	if err != nil {
		return nil, err
	}

	f, err := opentype.Parse(data)
	if err != nil {
		coll, collErr := opentype.ParseCollection(data)
		if collErr != nil {
			return nil, fmt.Errorf("parsing font: %w", err)
		}
		if f, err = coll.Font(0); err != nil {
			return nil, fmt.Errorf("reading collection: %w", err)
		}
	}
	return newFace(f, size)
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
