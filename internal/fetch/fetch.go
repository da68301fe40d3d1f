// Package fetch downloads remote media into session working directories.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"clipforge/internal/logging"
	"clipforge/internal/services"
)

// defaultExtension is assumed when the URL path carries none; source video is
// the common case.
const defaultExtension = ".mp4"

// Fetcher retrieves remote media over HTTP. It performs no retries; retry
// policy belongs to the caller.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// Option configures the fetcher.
type Option func(*Fetcher)

// WithClient injects a custom HTTP client (primarily for tests).
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New constructs a fetcher with the given request timeout.
func New(timeout time.Duration, opts ...Option) *Fetcher {
	fetcher := &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(fetcher)
	}
	fetcher.logger = logging.NewComponentLogger(fetcher.logger, "fetch")
	return fetcher
}

// Download retrieves rawURL into destDir, naming the file
// <prefix>_<unix-nano><ext>. The extension comes from the URL path, falling
// back to .mp4. It returns the absolute path of the written file. Failures,
// network-level or HTTP-status, carry the services.ErrDownload marker.
func (f *Fetcher) Download(ctx context.Context, rawURL, destDir, prefix string) (string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", services.Wrap(services.ErrDownload, "fetch", prefix, "empty URL", nil)
	}
	if strings.TrimSpace(prefix) == "" {
		return "", services.Wrap(services.ErrDownload, "fetch", "", "empty filename prefix", nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", services.Wrap(services.ErrDownload, "fetch", prefix, "build request", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrDownload, "fetch", prefix, "request "+rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", services.Wrap(services.ErrDownload, "fetch", prefix,
			fmt.Sprintf("remote returned %s for %s", resp.Status, rawURL), nil)
	}

	name := fmt.Sprintf("%s_%d%s", prefix, time.Now().UnixNano(), extensionFor(rawURL))
	destPath := filepath.Join(destDir, name)

	out, err := os.Create(destPath)
	if err != nil {
		return "", services.Wrap(services.ErrDownload, "fetch", prefix, "create "+destPath, err)
	}

	written, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(destPath)
		return "", services.Wrap(services.ErrDownload, "fetch", prefix, "write "+destPath, err)
	}

	f.logger.Debug("downloaded resource",
		logging.String("url", rawURL),
		logging.String("path", destPath),
		logging.Int64("bytes", written),
	)
	return destPath, nil
}

func extensionFor(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return defaultExtension
	}
	if ext := path.Ext(parsed.Path); ext != "" {
		return ext
	}
	return defaultExtension
}
