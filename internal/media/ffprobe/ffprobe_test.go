package ffprobe

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 30000.0 / 1001.0},
		{"25", 25},
		{"", 0},
		{"0/0", 0},
	}
	for _, tc := range cases {
		got, err := ParseFrameRate(tc.in)
		if err != nil {
			t.Fatalf("ParseFrameRate(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseFrameRate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseFrameRateNTSCNotRounded(t *testing.T) {
	got, err := ParseFrameRate("30000/1001")
	if err != nil {
		t.Fatalf("ParseFrameRate: %v", err)
	}
	if got == 30 {
		t.Fatal("NTSC rate must not round to 30")
	}
	if math.Abs(got-29.97002997002997) > 1e-12 {
		t.Fatalf("unexpected NTSC rate: %v", got)
	}
}

func TestParseFrameRateRejectsGarbage(t *testing.T) {
	if _, err := ParseFrameRate("abc/def"); err == nil {
		t.Fatal("expected error for non-numeric rational")
	}
	if _, err := ParseFrameRate("not-a-rate"); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "audio"},
			{CodecType: "video", Width: 1920, Height: 1080},
			{CodecType: "video", Width: 640, Height: 480},
		},
		Format: Format{Duration: "123.45"},
	}
	if result.VideoStreamCount() != 2 {
		t.Fatalf("expected 2 video streams, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 1 {
		t.Fatalf("expected 1 audio stream, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	video, ok := result.FirstVideoStream()
	if !ok || video.Width != 1920 {
		t.Fatalf("FirstVideoStream should return the first video stream, got %+v ok=%v", video, ok)
	}
}

func TestMediaInfoUsesFilesystemSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, make([]byte, 4096), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	result := Result{
		Streams: []Stream{{CodecType: "video", Width: 1280, Height: 720, RFrameRate: "30000/1001"}},
		Format:  Format{Duration: "12.5", Size: "999999"},
	}

	info, err := result.MediaInfo(path)
	if err != nil {
		t.Fatalf("MediaInfo: %v", err)
	}
	if info.FileSize != 4096 {
		t.Fatalf("file size must come from the filesystem, got %d", info.FileSize)
	}
	if info.Duration != 12.5 || info.Width != 1280 || info.Height != 720 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.FPS != 30000.0/1001.0 {
		t.Fatalf("unexpected fps: %v", info.FPS)
	}
}

func TestMediaInfoRequiresVideoStream(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "audio"}},
		Format:  Format{Duration: "3.0"},
	}
	if _, err := result.MediaInfo("ignored"); err == nil {
		t.Fatal("expected error when no video stream is present")
	}
}

func TestMediaInfoRejectsBadDuration(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "video", RFrameRate: "30/1"}},
		Format:  Format{Duration: "bogus"},
	}
	if _, err := result.MediaInfo("ignored"); err == nil {
		t.Fatal("expected error for unparsable duration")
	}
}
