// Package logging builds the process logger and lets level, format and file
// output change while the process runs.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log formats. FormatAuto picks text for a terminal and JSON otherwise.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

// Config describes the desired logging configuration.
type Config struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

// swapHandler delegates to the handler stored in root. Handlers derived with
// WithAttrs or WithGroup share root and replay their attrs and groups onto
// whatever handler is current, so loggers created before a swap follow it.
type swapHandler struct {
	root  *atomic.Pointer[slog.Handler]
	ops   []func(slog.Handler) slog.Handler
	cache atomic.Pointer[derived]
}

type derived struct {
	base *slog.Handler
	h    slog.Handler
}

func newSwapHandler(h slog.Handler) *swapHandler {
	s := &swapHandler{root: &atomic.Pointer[slog.Handler]{}}
	s.root.Store(&h)
	return s
}

func (s *swapHandler) swap(h slog.Handler) { s.root.Store(&h) }

func (s *swapHandler) current() slog.Handler {
	base := s.root.Load()
	if len(s.ops) == 0 {
		return *base
	}
	if d := s.cache.Load(); d != nil && d.base == base {
		return d.h
	}
	h := *base
	for _, op := range s.ops {
		h = op(h)
	}
	s.cache.Store(&derived{base: base, h: h})
	return h
}

func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return s.current().Enabled(ctx, level)
}

func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.current().Handle(ctx, r)
}

func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return s.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (s *swapHandler) WithGroup(name string) slog.Handler {
	return s.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (s *swapHandler) derive(op func(slog.Handler) slog.Handler) *swapHandler {
	ops := make([]func(slog.Handler) slog.Handler, len(s.ops), len(s.ops)+1)
	copy(ops, s.ops)
	return &swapHandler{root: s.root, ops: append(ops, op)}
}

// Manager owns the logger lifecycle and supports runtime reconfiguration.
type Manager struct {
	out      io.Writer
	levelVar *slog.LevelVar
	handler  *swapHandler

	mu     sync.Mutex
	config Config
	closer io.Closer // lumberjack writer, if any
}

// NewManager creates a Manager writing to out (plus the configured file) and
// returns it along with a ready-to-use logger.
func NewManager(cfg Config, out io.Writer) (*Manager, *slog.Logger) {
	lvl := &slog.LevelVar{}
	lvl.Set(parseLevel(cfg.Level))

	writer, closer := buildWriter(cfg, out)
	m := &Manager{
		out:      out,
		levelVar: lvl,
		handler:  newSwapHandler(buildHandler(writer, lvl, ResolveFormat(cfg.Format, out))),
		config:   cfg,
		closer:   closer,
	}
	return m, slog.New(m.handler)
}

// Reconfigure applies a new configuration at runtime. Level-only changes
// take effect through the LevelVar; format or file changes rebuild the
// handler.
func (m *Manager) Reconfigure(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.levelVar.Set(parseLevel(cfg.Level))

	old := m.config
	old.Level = cfg.Level
	if old != cfg {
		if m.closer != nil {
			m.closer.Close() //nolint:errcheck
			m.closer = nil
		}
		writer, closer := buildWriter(cfg, m.out)
		m.handler.swap(buildHandler(writer, m.levelVar, ResolveFormat(cfg.Format, m.out)))
		m.closer = closer
	}

	m.config = cfg
}

// Config returns the current configuration snapshot.
func (m *Manager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// Close releases the log file writer, if any.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closer != nil {
		err := m.closer.Close()
		m.closer = nil
		return err
	}
	return nil
}

// ResolveFormat turns FormatAuto (or an empty format) into text when out is
// a terminal and JSON otherwise. Explicit formats pass through.
func ResolveFormat(format string, out io.Writer) string {
	if format != "" && format != FormatAuto {
		return format
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // G115: fd fits in int
		return FormatText
	}
	return FormatJSON
}

// parseLevel converts a string to slog.Level, defaulting to Info.
func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildWriter returns out, teed into a rotating file when one is configured.
// The lumberjack logger is returned as the closer.
func buildWriter(cfg Config, out io.Writer) (io.Writer, io.Closer) {
	if cfg.File == "" {
		return out, nil
	}

	d := DefaultConfig()
	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    positiveOr(cfg.MaxSizeMB, d.MaxSizeMB),
		MaxBackups: positiveOr(cfg.MaxBackups, d.MaxBackups),
		MaxAge:     positiveOr(cfg.MaxAgeDays, d.MaxAgeDays),
	}
	return io.MultiWriter(out, lj), lj
}

func positiveOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func buildHandler(w io.Writer, leveler slog.Leveler, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: leveler}
	if format == FormatText {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// ValidLevel returns true if s is a recognized log level.
func ValidLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ValidFormat returns true if s is a recognized log format.
func ValidFormat(s string) bool {
	switch s {
	case FormatAuto, FormatText, FormatJSON:
		return true
	}
	return false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     FormatAuto,
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 30,
	}
}

func (c Config) String() string {
	s := fmt.Sprintf("level=%s format=%s", c.Level, c.Format)
	if c.File != "" {
		s += fmt.Sprintf(" file=%s max_size=%dMB max_backups=%d max_age=%dd",
			c.File, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
	}
	return s
}
