package postprocess

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"clipforge/internal/logging"
	"clipforge/internal/media/ffmpeg"
	"clipforge/internal/services"
)

// Profile describes the target geometry and encode settings for one platform.
type Profile struct {
	Name         string
	Width        int
	Height       int
	FrameRate    int
	VideoBitrate string
	AudioBitrate string
}

// Resolution renders the profile's target geometry as WxH.
func (p Profile) Resolution() string {
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

var profiles = map[string]Profile{
	"tiktok":    {Name: "tiktok", Width: 1080, Height: 1920, FrameRate: 30, VideoBitrate: "5M", AudioBitrate: "128k"},
	"instagram": {Name: "instagram", Width: 1080, Height: 1080, FrameRate: 30, VideoBitrate: "4M", AudioBitrate: "128k"},
	"youtube":   {Name: "youtube", Width: 1920, Height: 1080, FrameRate: 30, VideoBitrate: "8M", AudioBitrate: "128k"},
	"shorts":    {Name: "shorts", Width: 1080, Height: 1920, FrameRate: 30, VideoBitrate: "5M", AudioBitrate: "128k"},
}

// Platforms returns every supported profile sorted by name.
func Platforms() []Profile {
	result := make([]Profile, 0, len(profiles))
	for _, profile := range profiles {
		result = append(result, profile)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// ParsePlatform resolves a user-supplied platform name to its profile.
func ParsePlatform(name string) (Profile, error) {
	profile, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, services.Wrap(services.ErrPostProcess, "postprocess", "resolve platform",
			fmt.Sprintf("unknown platform %q", name), nil)
	}
	return profile, nil
}

// Engine is the subset of the media engine the processor needs.
type Engine interface {
	ScalePad(ctx context.Context, spec ffmpeg.ScalePadSpec) error
	Overlay(ctx context.Context, spec ffmpeg.OverlaySpec) error
	ExtractFrame(ctx context.Context, spec ffmpeg.FrameSpec) error
}

// Processor derives platform-ready variants from finished videos. Every
// operation writes a new sibling file; sources are never modified.
type Processor struct {
	engine Engine
	logger *slog.Logger
}

// Option configures the processor.
type Option func(*Processor)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcessor wraps a media engine.
func NewProcessor(engine Engine, opts ...Option) (*Processor, error) {
	if engine == nil {
		return nil, fmt.Errorf("processor requires a media engine")
	}
	processor := &Processor{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(processor)
	}
	processor.logger = logging.NewComponentLogger(processor.logger, "postprocess")
	return processor, nil
}

// Optimize re-encodes src for the named platform. The output lands next to the
// source as <stem>_<platform><ext> and its path is returned.
func (p *Processor) Optimize(ctx context.Context, src, platform string) (string, error) {
	profile, err := ParsePlatform(platform)
	if err != nil {
		return "", err
	}
	if err := checkSource(src, "optimize"); err != nil {
		return "", err
	}

	output := siblingPath(src, "_"+profile.Name, "")
	spec := ffmpeg.ScalePadSpec{
		Input:        src,
		Output:       output,
		Width:        profile.Width,
		Height:       profile.Height,
		FrameRate:    profile.FrameRate,
		VideoBitrate: profile.VideoBitrate,
		AudioBitrate: profile.AudioBitrate,
	}
	if err := p.engine.ScalePad(ctx, spec); err != nil {
		return "", services.Wrap(services.ErrPostProcess, "postprocess", "optimize for "+profile.Name, "", err)
	}
	p.logger.Info("platform variant written",
		logging.String(logging.FieldPlatform, profile.Name),
		logging.String("output", output),
	)
	return output, nil
}

// Watermark stamps an image onto src at the given corner. The output lands
// next to the source as <stem>_watermarked<ext>.
func (p *Processor) Watermark(ctx context.Context, src, image string, corner ffmpeg.Corner) (string, error) {
	if err := checkSource(src, "watermark"); err != nil {
		return "", err
	}
	if _, err := os.Stat(image); err != nil {
		return "", services.Wrap(services.ErrPostProcess, "postprocess", "watermark", "watermark image not readable", err)
	}

	output := siblingPath(src, "_watermarked", "")
	spec := ffmpeg.OverlaySpec{
		Input:     src,
		Watermark: image,
		Output:    output,
		Corner:    corner,
	}
	if err := p.engine.Overlay(ctx, spec); err != nil {
		return "", services.Wrap(services.ErrPostProcess, "postprocess", "watermark", "", err)
	}
	p.logger.Info("watermark applied", logging.String("output", output))
	return output, nil
}

// Thumbnail extracts a single JPEG still at the given offset. The output lands
// next to the source as <stem>_thumb.jpg.
func (p *Processor) Thumbnail(ctx context.Context, src string, offset float64) (string, error) {
	if err := checkSource(src, "thumbnail"); err != nil {
		return "", err
	}
	if offset < 0 {
		return "", services.Wrap(services.ErrPostProcess, "postprocess", "thumbnail",
			fmt.Sprintf("negative offset %v", offset), nil)
	}

	output := siblingPath(src, "_thumb", ".jpg")
	spec := ffmpeg.FrameSpec{
		Input:  src,
		Output: output,
		Offset: offset,
	}
	if err := p.engine.ExtractFrame(ctx, spec); err != nil {
		return "", services.Wrap(services.ErrPostProcess, "postprocess", "thumbnail", "", err)
	}
	p.logger.Info("thumbnail written", logging.String("output", output))
	return output, nil
}

func checkSource(src, operation string) error {
	if strings.TrimSpace(src) == "" {
		return services.Wrap(services.ErrPostProcess, "postprocess", operation, "source path required", nil)
	}
	if _, err := os.Stat(src); err != nil {
		return services.Wrap(services.ErrPostProcess, "postprocess", operation, "source not readable", err)
	}
	return nil
}

// siblingPath builds an output path next to src with a stem suffix. An empty
// newExt keeps the source extension.
func siblingPath(src, suffix, newExt string) string {
	ext := filepath.Ext(src)
	stem := strings.TrimSuffix(src, ext)
	if newExt != "" {
		ext = newExt
	}
	return stem + suffix + ext
}
