package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// tempSuffix marks in-progress writes. Files carrying it are safe to delete
// once no writer is running.
const tempSuffix = ".tmp"

// WriteAtomic streams the output of write into target without ever exposing a
// partially written file.
//
// Steps:
//  1. Create a temp file next to target (same directory, so the rename
//     below never crosses a mount point)
//  2. Call write with the temp file, then fsync and close it
//  3. Apply perm and rename the temp file over target
//
// On any failure the temp file is removed and target is left untouched.
func WriteAtomic(target string, perm os.FileMode, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // G301: output directories are world-readable
		return fmt.Errorf("creating parent directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempPattern(target))
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := write(tmp); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("renaming temp to target: %w", err)
	}
	return nil
}

// WriteFileAtomic writes data to target using WriteAtomic.
func WriteFileAtomic(target string, data []byte, perm os.FileMode) error {
	return WriteAtomic(target, perm, func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(data))
		return err
	})
}

// tempPattern is the os.CreateTemp pattern WriteAtomic uses for target.
func tempPattern(target string) string {
	return "." + filepath.Base(target) + ".*" + tempSuffix
}

// IsTempFile reports whether name is a temp file WriteAtomic created while
// writing target. Only the base names are compared.
func IsTempFile(name, target string) bool {
	base := filepath.Base(name)
	prefix := "." + filepath.Base(target) + "."
	return len(base) > len(prefix)+len(tempSuffix) &&
		strings.HasPrefix(base, prefix) && strings.HasSuffix(base, tempSuffix)
}

// RemoveStaleTemps deletes the temp files that interrupted writes of targets
// left in dir and returns the paths it removed. Other files, including temp
// files of other programs, are never touched. A missing dir is not an error.
func RemoveStaleTemps(dir string, targets []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var removed []string
	for _, e := range entries {
		if e.IsDir() || !slices.ContainsFunc(targets, func(t string) bool { return IsTempFile(e.Name(), t) }) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if err := os.Remove(p); err != nil {
			return removed, fmt.Errorf("removing %s: %w", p, err)
		}
		removed = append(removed, p)
	}
	return removed, nil
}
