package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"clipforge/internal/logging"
)

func TestSweepStaleRemovesOldDirectories(t *testing.T) {
	root := t.TempDir()

	stale := filepath.Join(root, "stale-session")
	fresh := filepath.Join(root, "fresh-session")
	for _, dir := range []string{stale, fresh} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	result, err := SweepStale(root, 24*time.Hour, logging.NewNop())
	if err != nil {
		t.Fatalf("SweepStale: %v", err)
	}

	if len(result.Removed) != 1 || result.Removed[0] != stale {
		t.Fatalf("unexpected removals: %v", result.Removed)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale dir should be gone, stat err=%v", err)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("fresh dir must survive: %v", err)
	}
}

func TestSweepStaleIgnoresFiles(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "not-a-session.mp4")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(file, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	result, err := SweepStale(root, time.Hour, logging.NewNop())
	if err != nil {
		t.Fatalf("SweepStale: %v", err)
	}
	if len(result.Removed) != 0 {
		t.Fatalf("files must not be swept: %v", result.Removed)
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("file should survive: %v", err)
	}
}

func TestSweepStaleMissingRoot(t *testing.T) {
	result, err := SweepStale(filepath.Join(t.TempDir(), "never-created"), time.Hour, logging.NewNop())
	if err != nil {
		t.Fatalf("missing root must not error: %v", err)
	}
	if len(result.Removed) != 0 || len(result.Errors) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}
