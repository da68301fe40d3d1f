package ffmpeg

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"clipforge/internal/logging"
)

// Engine wraps ffmpeg CLI interactions.
type Engine struct {
	binary string
	exec   Executor
	logger *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(e *Engine) {
		if exec != nil {
			e.exec = exec
		}
	}
}

// WithLogger attaches a logger for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New constructs an ffmpeg engine.
func New(binary string, opts ...Option) (*Engine, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	engine := &Engine{
		binary: binary,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	engine.logger = logging.NewComponentLogger(engine.logger, "ffmpeg")
	return engine, nil
}

// TranscodeAudio re-encodes a single audio track, optionally capping its
// duration. Tracks shorter than the cap keep their natural length; no silence
// padding is added.
func (e *Engine) TranscodeAudio(ctx context.Context, spec TranscodeAudioSpec) error {
	args, err := spec.args()
	if err != nil {
		return err
	}
	return e.run(ctx, "transcode audio", args)
}

// MixAudio mixes multiple tracks into one via the amix filter. The nominal mix
// length follows the first input; the result is additionally hard-capped at
// spec.MaxDuration when set.
func (e *Engine) MixAudio(ctx context.Context, spec MixSpec) error {
	args, err := spec.args()
	if err != nil {
		return err
	}
	return e.run(ctx, "mix audio", args)
}

// Mux combines a video stream with an optional audio track into the output
// container. The video is always transcoded, never stream-copied, so codec
// and bitrate settings apply on the no-audio path too.
func (e *Engine) Mux(ctx context.Context, spec MuxSpec) error {
	args, err := spec.args()
	if err != nil {
		return err
	}
	return e.run(ctx, "mux", args)
}

// ScalePad rescales video to an exact target resolution, preserving aspect
// ratio with letterbox/pillarbox padding.
func (e *Engine) ScalePad(ctx context.Context, spec ScalePadSpec) error {
	args, err := spec.args()
	if err != nil {
		return err
	}
	return e.run(ctx, "scale+pad", args)
}

// Overlay stamps a watermark image onto the video at a corner position and
// copies the audio stream unchanged.
func (e *Engine) Overlay(ctx context.Context, spec OverlaySpec) error {
	args, err := spec.args()
	if err != nil {
		return err
	}
	return e.run(ctx, "overlay", args)
}

// ExtractFrame grabs a single still image at the requested offset.
func (e *Engine) ExtractFrame(ctx context.Context, spec FrameSpec) error {
	args, err := spec.args()
	if err != nil {
		return err
	}
	return e.run(ctx, "extract frame", args)
}

func (e *Engine) run(ctx context.Context, operation string, args []string) error {
	e.logger.Debug("running ffmpeg",
		logging.String("operation", operation),
		logging.String("args", strings.Join(args, " ")),
	)
	return e.exec.Run(ctx, e.binary, args, nil)
}
