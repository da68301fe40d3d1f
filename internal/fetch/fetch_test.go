package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"clipforge/internal/services"
)

func TestDownloadWritesSingleFile(t *testing.T) {
	payload := []byte("fake video bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := New(5 * time.Second)

	path, err := fetcher.Download(context.Background(), server.URL+"/clips/source.webm", dir, "video")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Fatalf("file written outside destination: %s", path)
	}
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "video_") || !strings.HasSuffix(base, ".webm") {
		t.Fatalf("unexpected file name: %s", base)
	}

	got, err := os.ReadFile(path)
	if err != nil || string(got) != string(payload) {
		t.Fatalf("unexpected file content: %q err=%v", got, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one file, got %d", len(entries))
	}
}

func TestDownloadDefaultsExtension(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	defer server.Close()

	fetcher := New(5 * time.Second)
	path, err := fetcher.Download(context.Background(), server.URL+"/no-extension", t.TempDir(), "music")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !strings.HasSuffix(path, ".mp4") {
		t.Fatalf("expected .mp4 fallback, got %s", path)
	}
}

func TestDownloadNotFoundSurfacesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := New(5 * time.Second)
	dir := t.TempDir()

	_, err := fetcher.Download(context.Background(), server.URL+"/missing.mp4", dir, "video")
	if !errors.Is(err, services.ErrDownload) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("error must carry the remote status: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("no file may be written on failure, found %d", len(entries))
	}
}

func TestDownloadNetworkFailureSameKind(t *testing.T) {
	fetcher := New(500 * time.Millisecond)
	_, err := fetcher.Download(context.Background(), "http://127.0.0.1:1/unreachable.mp4", t.TempDir(), "video")
	if !errors.Is(err, services.ErrDownload) {
		t.Fatalf("network failures must surface as ErrDownload, got %v", err)
	}
}

func TestDownloadRequiresPrefix(t *testing.T) {
	fetcher := New(time.Second)
	if _, err := fetcher.Download(context.Background(), "http://example.com/a.mp4", t.TempDir(), " "); !errors.Is(err, services.ErrDownload) {
		t.Fatalf("expected ErrDownload for blank prefix, got %v", err)
	}
}
