// Package watcher reruns generation when the config file or a font file
// changes.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

const probeTimeout = 2 * time.Second

// Options tunes a Service. Zero values take the defaults.
type Options struct {
	// Debounce is the quiet period after the last change before a rebuild.
	Debounce time.Duration
	// MinInterval is the minimum time between two rebuilds.
	MinInterval time.Duration
	// PollInterval is how often files in directories without fsnotify
	// support are checked.
	PollInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = 500 * time.Millisecond
	}
	if o.PollInterval <= 0 {
		o.PollInterval = 5 * time.Second
	}
	return o
}

// Service watches a fixed set of files and calls rebuild after they change.
// Files are watched through their parent directories so that editors which
// replace a file by renaming over it are still noticed.
type Service struct {
	rebuild    func(ctx context.Context) error
	files      map[string]struct{}
	opts       Options
	limiter    *rate.Limiter
	logger     *slog.Logger
	probeCache *ProbeCache

	mu       sync.Mutex
	watching map[string]bool      // directories added to fsnotify
	polled   map[string]fileStamp // files checked by polling
}

type fileStamp struct {
	exists bool
	mod    time.Time
	size   int64
}

func (a fileStamp) same(b fileStamp) bool {
	return a.exists == b.exists && a.size == b.size && a.mod.Equal(b.mod)
}

func stat(path string) fileStamp {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{exists: true, mod: info.ModTime(), size: info.Size()}
}

// NewService creates a watcher for files. Empty paths are ignored.
func NewService(rebuild func(ctx context.Context) error, files []string, opts Options, logger *slog.Logger, probeCache *ProbeCache) *Service {
	opts = opts.withDefaults()

	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}
	if probeCache == nil {
		probeCache = NewProbeCache()
	}

	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		if f == "" {
			continue
		}
		if abs, err := filepath.Abs(f); err == nil {
			f = abs
		}
		set[filepath.Clean(f)] = struct{}{}
	}

	return &Service{
		rebuild:    rebuild,
		files:      set,
		opts:       opts,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger.With("component", "watcher"),
		probeCache: probeCache,
		watching:   make(map[string]bool),
		polled:     make(map[string]fileStamp),
	}
}

// Start blocks until ctx is canceled. Directories where fsnotify works are
// watched; files elsewhere (or everywhere, if fsnotify is unavailable) are
// polled.
func (s *Service) Start(ctx context.Context) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warn("fsnotify unavailable, running poll-only", "error", err)
	} else {
		defer w.Close() //nolint:errcheck
	}
	s.setup(w)
	s.logger.Info("watcher starting",
		"files", len(s.files),
		"watched_dirs", len(s.watching),
		"polled_files", len(s.polled))

	// Nil channels never receive.
	var eventCh <-chan fsnotify.Event
	var errCh <-chan error
	if w != nil {
		eventCh = w.Events
		errCh = w.Errors
	}

	var pollCh <-chan time.Time
	if len(s.polled) > 0 {
		t := time.NewTicker(s.opts.PollInterval)
		defer t.Stop()
		pollCh = t.C
	}

	// Debounce timer coalesces bursts of changes into one rebuild. Starts
	// stopped; reset on each relevant change.
	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}
	pending := false
	schedule := func() {
		if !debounceTimer.Stop() {
			select {
			case <-debounceTimer.C:
			default:
			}
		}
		debounceTimer.Reset(s.opts.Debounce)
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("watcher stopping")
			return

		case ev, ok := <-eventCh:
			if !ok {
				return
			}
			if s.relevant(ev) {
				s.logger.Debug("source changed", "path", ev.Name, "op", ev.Op.String())
				schedule()
			}

		case err, ok := <-errCh:
			if !ok {
				return
			}
			s.logger.Error("fsnotify error", "error", err)

		case <-pollCh:
			if s.poll() {
				schedule()
			}

		case <-debounceTimer.C:
			if !pending {
				continue
			}
			pending = false
			if err := s.limiter.Wait(ctx); err != nil {
				// Only fails once ctx is done.
				continue
			}
			s.logger.Info("sources changed, regenerating")
			if err := s.rebuild(ctx); err != nil {
				s.logger.Error("regeneration failed", "error", err)
			}
		}
	}
}

// setup adds fsnotify watches for every parent directory that supports them
// and snapshots the remaining files for polling.
func (s *Service) setup(w *fsnotify.Watcher) {
	dirs := make(map[string][]string)
	for f := range s.files {
		dirs[filepath.Dir(f)] = append(dirs[filepath.Dir(f)], f)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for dir, files := range dirs {
		if w != nil && s.probeCache.Supported(dir, probeTimeout) {
			err := w.Add(dir)
			if err == nil {
				s.watching[dir] = true
				s.logger.Debug("watching directory", "dir", dir)
				continue
			}
			s.logger.Warn("failed to watch directory, polling instead", "dir", dir, "error", err)
		}
		for _, f := range files {
			s.polled[f] = stat(f)
		}
		s.logger.Debug("polling directory", "dir", dir, "files", len(files))
	}
}

// relevant reports whether ev touches one of the watched files.
func (s *Service) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	_, ok := s.files[filepath.Clean(ev.Name)]
	return ok
}

// poll compares each polled file with its last snapshot and reports whether
// any changed.
func (s *Service) poll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for f, old := range s.polled {
		cur := stat(f)
		if !cur.same(old) {
			s.logger.Debug("poll: source changed", "path", f)
			s.polled[f] = cur
			changed = true
		}
	}
	return changed
}
