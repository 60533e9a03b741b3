package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ProbeCache remembers which directories deliver fsnotify events.
type ProbeCache struct {
	mu      sync.RWMutex
	results map[string]bool
}

// NewProbeCache creates an empty probe cache.
func NewProbeCache() *ProbeCache {
	return &ProbeCache{results: make(map[string]bool)}
}

// Get returns whether fsnotify works in dir. The second return value is
// false if dir has not been probed.
func (pc *ProbeCache) Get(dir string) (supported bool, ok bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	supported, ok = pc.results[dir]
	return
}

// Set stores a probe result for dir.
func (pc *ProbeCache) Set(dir string, supported bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.results[dir] = supported
}

// Supported returns the cached result for dir, probing it on first use.
func (pc *ProbeCache) Supported(dir string, timeout time.Duration) bool {
	if supported, ok := pc.Get(dir); ok {
		return supported
	}
	supported := ProbeFSNotify(dir, timeout)
	pc.Set(dir, supported)
	return supported
}

// ProbeFSNotify tests whether fsnotify delivers events for dir. It creates a
// hidden temp file in dir and reports whether the Create event arrives within
// timeout. Read-only directories report false.
func ProbeFSNotify(dir string, timeout time.Duration) bool {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return false
	}
	defer w.Close() //nolint:errcheck

	if err := w.Add(dir); err != nil {
		return false
	}

	f, err := os.CreateTemp(dir, ".brandkit-probe-*")
	if err != nil {
		return false
	}
	probeName := filepath.Base(f.Name())
	_ = f.Close()
	defer os.Remove(f.Name()) //nolint:errcheck

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return false
			}
			if ev.Has(fsnotify.Create) && filepath.Base(ev.Name) == probeName {
				return true
			}
		case <-w.Errors:
			return false
		case <-timer.C:
			return false
		}
	}
}
