package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Encoding.VideoCodec != "libx264" || cfg.Encoding.AudioCodec != "aac" || cfg.Encoding.Bitrate != "2M" {
		t.Fatalf("unexpected encoding defaults: %+v", cfg.Encoding)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
temp_root = "` + filepath.Join(dir, "tmp") + `"
output_root = "` + filepath.Join(dir, "out") + `"

[encoding]
output_format = "webm"
bitrate = "4M"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as found")
	}
	if resolved != path {
		t.Fatalf("unexpected resolved path: %s", resolved)
	}
	if cfg.Encoding.OutputFormat != "webm" {
		t.Fatalf("output_format override lost: %s", cfg.Encoding.OutputFormat)
	}
	if cfg.Encoding.Bitrate != "4M" {
		t.Fatalf("bitrate override lost: %s", cfg.Encoding.Bitrate)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging overrides lost: %+v", cfg.Logging)
	}
	// Untouched sections keep defaults.
	if cfg.Encoding.VideoCodec != "libx264" {
		t.Fatalf("expected default video codec, got %s", cfg.Encoding.VideoCodec)
	}
}

func TestLoadRejectsSharedRoots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
temp_root = "` + dir + `"
output_root = "` + dir + `"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error when temp_root equals output_root")
	}
}

func TestLoadRejectsUnknownContainer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[encoding]\noutput_format = \"avi\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unsupported container")
	}
	if !strings.Contains(err.Error(), "avi") {
		t.Fatalf("error should name the container: %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.TempRoot = filepath.Join(dir, "tmp")
	cfg.Paths.OutputRoot = filepath.Join(dir, "out")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, p := range []string{cfg.Paths.TempRoot, cfg.Paths.OutputRoot, cfg.Paths.LogDir} {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", p, err)
		}
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	sample := SampleConfig()
	for _, want := range []string{"temp_root", "output_root", "ffprobe", "mix_audio_bitrate", "stale_session_hours"} {
		if !strings.Contains(sample, want) {
			t.Fatalf("sample config missing key %q", want)
		}
	}
}
