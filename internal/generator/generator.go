// Package generator renders every brand asset and writes it to disk.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	stdimage "image"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/subtxtpress/brandkit/internal/brand"
	"github.com/subtxtpress/brandkit/internal/icon"
	"github.com/subtxtpress/brandkit/internal/image"
	"github.com/subtxtpress/brandkit/internal/preview"
	"github.com/subtxtpress/brandkit/internal/typeface"
)

// Artifact kinds.
const (
	KindIcon    = "icon"
	KindFavicon = "favicon"
	KindPreview = "preview"
)

// Options locates the outputs.
type Options struct {
	IconsDir    string
	PreviewPath string
	// Sizes overrides icon.Sizes when set.
	Sizes []int
}

// Artifact describes one written file.
type Artifact struct {
	Kind   string
	Path   string
	Width  int
	Height int
}

// Report summarizes a run.
type Report struct {
	RunID     string
	Artifacts []Artifact
	Duration  time.Duration
}

// Service drives the icon and preview builders and persists their output.
type Service struct {
	brand  brand.Brand
	fonts  *typeface.Resolver
	opts   Options
	logger *slog.Logger
}

// New creates a Service.
func New(b brand.Brand, fonts *typeface.Resolver, opts Options, logger *slog.Logger) *Service {
	if len(opts.Sizes) == 0 {
		opts.Sizes = icon.Sizes
	}
	return &Service{
		brand:  b,
		fonts:  fonts,
		opts:   opts,
		logger: logger.With(slog.String("component", "generator")),
	}
}

// Run renders and writes every artifact. A write failure aborts the run;
// files already written stay in place and no partial file is left behind.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	rep := &Report{RunID: uuid.NewString()}
	logger := s.logger.With(slog.String("run_id", rep.RunID))
	logger.Info("generation started",
		slog.String("icons_dir", s.opts.IconsDir),
		slog.String("preview_path", s.opts.PreviewPath))

	image.CleanupStaleWrites(s.opts.IconsDir, s.iconTargets(), logger)
	image.CleanupStaleWrites(filepath.Dir(s.opts.PreviewPath), []string{filepath.Base(s.opts.PreviewPath)}, logger)

	if err := s.writeIcons(ctx, rep, logger); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.writePreview(rep, logger); err != nil {
		return nil, err
	}

	rep.Duration = time.Since(start)
	logger.Info("generation finished",
		slog.Int("artifacts", len(rep.Artifacts)),
		slog.Duration("duration", rep.Duration))
	return rep, nil
}

// renderSizes returns the requested sizes plus any favicon size not among
// them.
func (s *Service) renderSizes() []int {
	sizes := slices.Clone(s.opts.Sizes)
	for _, f := range icon.FaviconSizes {
		if !slices.Contains(sizes, f) {
			sizes = append(sizes, f)
		}
	}
	return sizes
}

// iconTargets lists the file names a run writes into the icons directory.
func (s *Service) iconTargets() []string {
	names := make([]string, 0, len(s.opts.Sizes)+1)
	for _, size := range s.opts.Sizes {
		names = append(names, image.IconFileName(size))
	}
	return append(names, image.FaviconFileName)
}

func (s *Service) writeIcons(ctx context.Context, rep *Report, logger *slog.Logger) error {
	icons, err := icon.Build(ctx, s.renderSizes(), s.brand)
	if err != nil {
		return fmt.Errorf("building icons: %w", err)
	}

	for _, ic := range icons {
		if !slices.Contains(s.opts.Sizes, ic.Size) {
			continue
		}
		path := filepath.Join(s.opts.IconsDir, image.IconFileName(ic.Size))
		if err := image.SaveImage(path, ic.Canvas.Image(), logger); err != nil {
			return fmt.Errorf("icon %d: %w", ic.Size, err)
		}
		rep.add(KindIcon, path, ic.Canvas.Image())
		logger.Info("wrote icon", slog.String("path", path), slog.Int("size", ic.Size))
	}

	frames, err := icon.FaviconFrames(icons)
	if err != nil {
		return err
	}
	imgs := make([]stdimage.Image, len(frames))
	for i, f := range frames {
		imgs[i] = f.Canvas.Image()
	}
	var buf bytes.Buffer
	if err := image.EncodeICO(&buf, imgs); err != nil {
		return fmt.Errorf("favicon: %w", err)
	}
	path := filepath.Join(s.opts.IconsDir, image.FaviconFileName)
	if err := image.Save(path, buf.Bytes(), logger); err != nil {
		return fmt.Errorf("favicon: %w", err)
	}
	rep.add(KindFavicon, path, imgs[0])
	logger.Info("wrote favicon", slog.String("path", path), slog.Int("entries", len(imgs)))
	return nil
}

func (s *Service) writePreview(rep *Report, logger *slog.Logger) error {
	faces := preview.ResolveFaces(s.fonts, s.brand.Fonts)
	c, err := preview.Build(s.brand, faces)
	if err != nil {
		return fmt.Errorf("building preview: %w", err)
	}

	flat := image.Flatten(c.Image(), s.brand.Palette.Base.Opaque())
	if !image.IsOpaque(flat) {
		return errors.New("preview: flattened image still has transparent pixels")
	}
	if err := image.SaveImage(s.opts.PreviewPath, flat, logger); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	rep.add(KindPreview, s.opts.PreviewPath, flat)
	logger.Info("wrote preview", slog.String("path", s.opts.PreviewPath))
	return nil
}

func (r *Report) add(kind, path string, img stdimage.Image) {
	b := img.Bounds()
	r.Artifacts = append(r.Artifacts, Artifact{Kind: kind, Path: path, Width: b.Dx(), Height: b.Dy()})
}
