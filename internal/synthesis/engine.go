package synthesis

import (
	"context"

	"clipforge/internal/media/ffmpeg"
	"clipforge/internal/media/ffprobe"
)

// Fetcher downloads a remote resource into destDir, returning the local path.
type Fetcher interface {
	Download(ctx context.Context, url, destDir, prefix string) (string, error)
}

// Engine is the media-engine capability contract the pipeline depends on.
// The real implementation shells out to ffmpeg; tests substitute fakes.
type Engine interface {
	TranscodeAudio(ctx context.Context, spec ffmpeg.TranscodeAudioSpec) error
	MixAudio(ctx context.Context, spec ffmpeg.MixSpec) error
	Mux(ctx context.Context, spec ffmpeg.MuxSpec) error
}

// Inspector probes a local media file. MediaInfo is recomputed fresh per
// file, never cached across sessions.
type Inspector interface {
	Probe(ctx context.Context, path string) (ffprobe.MediaInfo, error)
}

type toolInspector struct {
	binary string
}

// NewInspector returns an Inspector backed by the ffprobe binary.
func NewInspector(binary string) Inspector {
	return toolInspector{binary: binary}
}

func (t toolInspector) Probe(ctx context.Context, path string) (ffprobe.MediaInfo, error) {
	return ffprobe.Probe(ctx, t.binary, path)
}
