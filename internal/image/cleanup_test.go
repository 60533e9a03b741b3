package image

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanupStaleWrites(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, ".icon-16.png.1234.tmp")
	icon := filepath.Join(dir, "icon-16.png")
	foreign := filepath.Join(dir, ".notes.md.tmp")
	for _, p := range []string{stale, icon, foreign} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	CleanupStaleWrites(dir, []string{IconFileName(16), FaviconFileName}, quietLogger())

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale temp file should be deleted")
	}
	if _, err := os.Stat(icon); err != nil {
		t.Errorf("icon should be kept: %v", err)
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Errorf("temp file of another program should be kept: %v", err)
	}
}

func TestCleanupStaleWrites_MissingDir(t *testing.T) {
	// Must not panic or fail on a directory that does not exist yet.
	CleanupStaleWrites(filepath.Join(t.TempDir(), "nope"), []string{FaviconFileName}, quietLogger())
}
