package postprocess

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"clipforge/internal/media/ffmpeg"
	"clipforge/internal/services"
	"clipforge/internal/testsupport"
)

type fakeEngine struct {
	scalePads []ffmpeg.ScalePadSpec
	overlays  []ffmpeg.OverlaySpec
	frames    []ffmpeg.FrameSpec
	failWith  error
}

func (e *fakeEngine) ScalePad(_ context.Context, spec ffmpeg.ScalePadSpec) error {
	e.scalePads = append(e.scalePads, spec)
	return e.failWith
}

func (e *fakeEngine) Overlay(_ context.Context, spec ffmpeg.OverlaySpec) error {
	e.overlays = append(e.overlays, spec)
	return e.failWith
}

func (e *fakeEngine) ExtractFrame(_ context.Context, spec ffmpeg.FrameSpec) error {
	e.frames = append(e.frames, spec)
	return e.failWith
}

func newProcessor(t *testing.T, engine Engine) *Processor {
	t.Helper()
	processor, err := NewProcessor(engine)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	return processor
}

func sourceVideo(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "final.mp4")
	testsupport.WriteFile(t, src, 64)
	return src
}

func TestOptimizeAppliesPlatformProfile(t *testing.T) {
	engine := &fakeEngine{}
	processor := newProcessor(t, engine)
	src := sourceVideo(t)

	out, err := processor.Optimize(context.Background(), src, "TikTok")
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if out != strings.TrimSuffix(src, ".mp4")+"_tiktok.mp4" {
		t.Fatalf("unexpected output name: %s", out)
	}
	if len(engine.scalePads) != 1 {
		t.Fatalf("expected one scale+pad, got %d", len(engine.scalePads))
	}
	spec := engine.scalePads[0]
	if spec.Width != 1080 || spec.Height != 1920 || spec.FrameRate != 30 {
		t.Fatalf("tiktok geometry wrong: %+v", spec)
	}
	if spec.VideoBitrate != "5M" || spec.AudioBitrate != "128k" {
		t.Fatalf("tiktok bitrates wrong: %+v", spec)
	}
	if spec.Input != src || spec.Output == src {
		t.Fatalf("source must never be overwritten: %+v", spec)
	}
}

func TestOptimizeProfileTable(t *testing.T) {
	want := map[string][3]int{
		"tiktok":    {1080, 1920, 30},
		"instagram": {1080, 1080, 30},
		"youtube":   {1920, 1080, 30},
		"shorts":    {1080, 1920, 30},
	}
	platforms := Platforms()
	if len(platforms) != len(want) {
		t.Fatalf("expected %d platforms, got %d", len(want), len(platforms))
	}
	for _, profile := range platforms {
		geometry, ok := want[profile.Name]
		if !ok {
			t.Fatalf("unexpected platform %q", profile.Name)
		}
		if profile.Width != geometry[0] || profile.Height != geometry[1] || profile.FrameRate != geometry[2] {
			t.Fatalf("profile %s geometry wrong: %+v", profile.Name, profile)
		}
	}
}

func TestOptimizeUnknownPlatform(t *testing.T) {
	engine := &fakeEngine{}
	processor := newProcessor(t, engine)

	_, err := processor.Optimize(context.Background(), sourceVideo(t), "vine")
	if !errors.Is(err, services.ErrPostProcess) {
		t.Fatalf("expected ErrPostProcess, got %v", err)
	}
	if !strings.Contains(err.Error(), "vine") {
		t.Fatalf("unknown platform must be named: %v", err)
	}
	if len(engine.scalePads) != 0 {
		t.Fatal("no engine work may run for an unknown platform")
	}
}

func TestOptimizeMissingSource(t *testing.T) {
	processor := newProcessor(t, &fakeEngine{})

	_, err := processor.Optimize(context.Background(), filepath.Join(t.TempDir(), "absent.mp4"), "youtube")
	if !errors.Is(err, services.ErrPostProcess) {
		t.Fatalf("expected ErrPostProcess, got %v", err)
	}
}

func TestOptimizeEngineFailure(t *testing.T) {
	engine := &fakeEngine{failWith: errors.New("exit status 1")}
	processor := newProcessor(t, engine)

	_, err := processor.Optimize(context.Background(), sourceVideo(t), "youtube")
	if !errors.Is(err, services.ErrPostProcess) {
		t.Fatalf("expected ErrPostProcess, got %v", err)
	}
	if !strings.Contains(err.Error(), "optimize for youtube") {
		t.Fatalf("failed operation must be named: %v", err)
	}
}

func TestWatermark(t *testing.T) {
	engine := &fakeEngine{}
	processor := newProcessor(t, engine)
	src := sourceVideo(t)
	logo := filepath.Join(t.TempDir(), "logo.png")
	testsupport.WriteFile(t, logo, 16)

	out, err := processor.Watermark(context.Background(), src, logo, ffmpeg.CornerTopLeft)
	if err != nil {
		t.Fatalf("Watermark: %v", err)
	}
	if !strings.HasSuffix(out, "_watermarked.mp4") {
		t.Fatalf("unexpected output name: %s", out)
	}
	spec := engine.overlays[0]
	if spec.Corner != ffmpeg.CornerTopLeft || spec.Watermark != logo {
		t.Fatalf("overlay spec wrong: %+v", spec)
	}
}

func TestWatermarkMissingImage(t *testing.T) {
	engine := &fakeEngine{}
	processor := newProcessor(t, engine)

	_, err := processor.Watermark(context.Background(), sourceVideo(t),
		filepath.Join(t.TempDir(), "absent.png"), ffmpeg.CornerBottomRight)
	if !errors.Is(err, services.ErrPostProcess) {
		t.Fatalf("expected ErrPostProcess, got %v", err)
	}
	if len(engine.overlays) != 0 {
		t.Fatal("no engine work may run without a readable watermark")
	}
}

func TestThumbnail(t *testing.T) {
	engine := &fakeEngine{}
	processor := newProcessor(t, engine)
	src := sourceVideo(t)

	out, err := processor.Thumbnail(context.Background(), src, 2.5)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if out != strings.TrimSuffix(src, ".mp4")+"_thumb.jpg" {
		t.Fatalf("thumbnail must be a sibling jpg: %s", out)
	}
	if engine.frames[0].Offset != 2.5 {
		t.Fatalf("offset lost: %+v", engine.frames[0])
	}
}

func TestThumbnailNegativeOffset(t *testing.T) {
	engine := &fakeEngine{}
	processor := newProcessor(t, engine)

	_, err := processor.Thumbnail(context.Background(), sourceVideo(t), -1)
	if !errors.Is(err, services.ErrPostProcess) {
		t.Fatalf("expected ErrPostProcess, got %v", err)
	}
	if len(engine.frames) != 0 {
		t.Fatal("no engine work may run for a negative offset")
	}
}

func TestOperationsAreIndependent(t *testing.T) {
	engine := &fakeEngine{}
	processor := newProcessor(t, engine)
	src := sourceVideo(t)
	logo := filepath.Join(t.TempDir(), "logo.png")
	testsupport.WriteFile(t, logo, 16)

	if _, err := processor.Optimize(context.Background(), src, "shorts"); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if _, err := processor.Watermark(context.Background(), src, logo, ffmpeg.CornerBottomLeft); err != nil {
		t.Fatalf("Watermark: %v", err)
	}
	if _, err := processor.Thumbnail(context.Background(), src, 0); err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}

	// Each operation reads the original source, not a prior operation's output.
	if engine.overlays[0].Input != src || engine.frames[0].Input != src {
		t.Fatal("operations must not chain off each other's outputs")
	}
	if data, err := os.ReadFile(src); err != nil || len(data) != 64 {
		t.Fatalf("source modified: %d bytes, err %v", len(data), err)
	}
}
