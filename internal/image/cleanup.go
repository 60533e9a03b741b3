package image

import (
	"log/slog"

	"github.com/subtxtpress/brandkit/internal/filesystem"
)

// CleanupStaleWrites deletes the temp files an interrupted write of one of
// targets left in dir. Failures are logged and otherwise ignored; a leftover
// temp file never blocks generation.
func CleanupStaleWrites(dir string, targets []string, logger *slog.Logger) {
	removed, err := filesystem.RemoveStaleTemps(dir, targets)
	for _, p := range removed {
		logger.Info("deleted stale temp file", slog.String("path", p))
	}
	if err != nil {
		logger.Warn("failed to clean up stale temp files",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
	}
}
