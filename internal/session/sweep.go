package session

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"clipforge/internal/logging"
)

// sweepLockName guards a temp root against concurrent sweeps. Sessions
// themselves never take this lock.
const sweepLockName = ".sweep.lock"

// ErrSweepInProgress reports that another process is already sweeping the
// same temp root.
var ErrSweepInProgress = errors.New("sweep already in progress")

// SweepResult contains the outcome of a stale directory sweep.
type SweepResult struct {
	Removed []string
	Errors  []SweepError
}

// SweepError pairs a directory path with its removal error.
type SweepError struct {
	Path  string
	Error error
}

// SweepStale removes session directories older than maxAge, typically
// leftovers from crashed runs whose cleanup never executed. It returns the
// removed directories and any errors encountered; removal errors are
// collected, not fatal.
func SweepStale(tempRoot string, maxAge time.Duration, logger *slog.Logger) (SweepResult, error) {
	result := SweepResult{}
	logger = logging.NewComponentLogger(logger, "session")

	tempRoot = strings.TrimSpace(tempRoot)
	if tempRoot == "" {
		return result, nil
	}
	if _, err := os.Stat(tempRoot); os.IsNotExist(err) {
		return result, nil
	}

	lock := flock.New(filepath.Join(tempRoot, sweepLockName))
	locked, err := lock.TryLock()
	if err != nil {
		return result, err
	}
	if !locked {
		return result, ErrSweepInProgress
	}
	defer func() { _ = lock.Unlock() }()

	entries, err := os.ReadDir(tempRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}

	cutoff := time.Now().Add(-maxAge)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirPath := filepath.Join(tempRoot, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, SweepError{Path: dirPath, Error: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.RemoveAll(dirPath); err != nil {
			result.Errors = append(result.Errors, SweepError{Path: dirPath, Error: err})
			logger.Warn("failed to remove stale session directory",
				logging.String("path", dirPath),
				logging.Error(err),
			)
			continue
		}
		result.Removed = append(result.Removed, dirPath)
		logger.Info("removed stale session directory",
			logging.String("path", dirPath),
			logging.Duration("age", time.Since(info.ModTime())),
		)
	}

	return result, nil
}
