package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clipforge/internal/config"
	"clipforge/internal/fetch"
	"clipforge/internal/logging"
	"clipforge/internal/media/ffmpeg"
	"clipforge/internal/services"
	"clipforge/internal/session"
)

// Pipeline runs synthesis requests. One Pipeline serves any number of
// concurrent requests; each request gets its own session and shares no
// mutable state with others.
type Pipeline struct {
	cfg       *config.Config
	fetcher   Fetcher
	engine    Engine
	inspector Inspector
	sessions  *session.Manager
	logger    *slog.Logger
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithFetcher injects a custom fetcher (primarily for tests).
func WithFetcher(fetcher Fetcher) Option {
	return func(p *Pipeline) {
		if fetcher != nil {
			p.fetcher = fetcher
		}
	}
}

// WithEngine injects a custom media engine.
func WithEngine(engine Engine) Option {
	return func(p *Pipeline) {
		if engine != nil {
			p.engine = engine
		}
	}
}

// WithInspector injects a custom media inspector.
func WithInspector(inspector Inspector) Option {
	return func(p *Pipeline) {
		if inspector != nil {
			p.inspector = inspector
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New constructs a pipeline from configuration. Temp and output roots come
// from the config, never from ambient globals.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("pipeline requires configuration")
	}

	pipeline := &Pipeline{
		cfg:    cfg,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(pipeline)
	}
	pipeline.logger = logging.NewComponentLogger(pipeline.logger, "synthesis")

	if pipeline.fetcher == nil {
		pipeline.fetcher = fetch.New(
			time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second,
			fetch.WithLogger(pipeline.logger),
		)
	}
	if pipeline.engine == nil {
		engine, err := ffmpeg.New(cfg.FFmpegBinary(), ffmpeg.WithLogger(pipeline.logger))
		if err != nil {
			return nil, err
		}
		pipeline.engine = engine
	}
	if pipeline.inspector == nil {
		pipeline.inspector = NewInspector(cfg.FFprobeBinary())
	}

	sessions, err := session.NewManager(cfg.Paths.TempRoot, pipeline.logger)
	if err != nil {
		return nil, err
	}
	pipeline.sessions = sessions

	return pipeline, nil
}

// Synthesize runs one request to completion. On any failure the session's
// working directory is removed before the error, wrapped in
// services.ErrSynthesis with the stage marker preserved, is returned. On
// success the finished artifact has already been moved to the output root and
// the working directory removed.
func (p *Pipeline) Synthesize(ctx context.Context, req Request) (result *Result, err error) {
	req = req.withDefaults(p.cfg.Encoding)
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrSynthesis, err)
	}

	sess, err := p.sessions.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrSynthesis, err)
	}
	logger := p.logger.With(logging.String(logging.FieldSessionID, sess.ID()))

	// The working directory goes away on every exit path: success, stage
	// failure, and panic alike.
	defer func() {
		sess.Cleanup()
		if err != nil {
			err = fmt.Errorf("%w: %w", services.ErrSynthesis, err)
			logger.Error("synthesis failed",
				logging.String("kind", services.Kind(err)),
				logging.Error(err),
			)
		}
	}()

	logger.Info("synthesis started",
		logging.String("video_url", req.VideoURL),
		logging.Bool("has_audio", req.HasAudio()),
		logging.String("format", req.OutputFormat),
	)

	videoPath, err := p.fetcher.Download(ctx, req.VideoURL, sess.Dir(), "video")
	if err != nil {
		return nil, err
	}
	var audioTracks []string
	for _, input := range req.audioInputs() {
		track, err := p.fetcher.Download(ctx, input.url, sess.Dir(), input.prefix)
		if err != nil {
			return nil, err
		}
		audioTracks = append(audioTracks, track)
	}

	sourceInfo, err := p.inspector.Probe(ctx, videoPath)
	if err != nil {
		return nil, services.Wrap(services.ErrProbe, "probe", "inspect source video", "", err)
	}
	logger.Debug("source probed",
		logging.Float64("duration", sourceInfo.Duration),
		logging.Int("width", sourceInfo.Width),
		logging.Int("height", sourceInfo.Height),
	)

	var mixedTrack string
	if len(audioTracks) > 0 {
		mixedTrack, err = p.mixTracks(ctx, sess, audioTracks, sourceInfo.Duration)
		if err != nil {
			return nil, err
		}
	}

	outputName := sess.ID() + "." + req.OutputFormat
	outputPath, err := sess.Path(outputName)
	if err != nil {
		return nil, services.Wrap(services.ErrMux, "mux", "allocate output", "", err)
	}
	muxSpec := ffmpeg.MuxSpec{
		Video:      videoPath,
		Audio:      mixedTrack,
		Output:     outputPath,
		VideoCodec: req.VideoCodec,
		AudioCodec: req.AudioCodec,
		Bitrate:    req.Bitrate,
	}
	if err := p.engine.Mux(ctx, muxSpec); err != nil {
		return nil, services.Wrap(services.ErrMux, "mux", "combine streams", "", err)
	}

	finishedInfo, err := p.inspector.Probe(ctx, outputPath)
	if err != nil {
		return nil, services.Wrap(services.ErrProbe, "probe", "inspect finished output", "", err)
	}

	published, err := sess.Publish(outputPath, p.cfg.Paths.OutputRoot, outputName)
	if err != nil {
		return nil, err
	}

	logger.Info("synthesis finished",
		logging.String("output", published),
		logging.Float64("duration", finishedInfo.Duration),
		logging.Int64("bytes", finishedInfo.FileSize),
	)
	return &Result{
		OutputPath: published,
		Duration:   finishedInfo.Duration,
		FileSize:   finishedInfo.FileSize,
		Format:     req.OutputFormat,
	}, nil
}
