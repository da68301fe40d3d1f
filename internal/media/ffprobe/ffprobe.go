package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index      int    `json:"index"`
	CodecName  string `json:"codec_name"`
	CodecType  string `json:"codec_type"`
	Duration   string `json:"duration"`
	BitRate    string `json:"bit_rate"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	SampleRate string `json:"sample_rate"`
	Channels   int    `json:"channels"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// MediaInfo is the reduced, read-only summary the pipeline works with.
// FileSize comes from the filesystem, not from container metadata.
type MediaInfo struct {
	Duration float64
	Width    int
	Height   int
	FPS      float64
	FileSize int64
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// Probe inspects the file and derives a MediaInfo. It fails when the file has
// no video stream or when ffprobe reports no usable duration.
func Probe(ctx context.Context, binary string, path string) (MediaInfo, error) {
	result, err := Inspect(ctx, binary, path)
	if err != nil {
		return MediaInfo{}, err
	}
	return result.MediaInfo(path)
}

// MediaInfo derives the pipeline summary from an already-parsed result. The
// path argument is consulted only for the on-disk size.
func (r Result) MediaInfo(path string) (MediaInfo, error) {
	video, ok := r.FirstVideoStream()
	if !ok {
		return MediaInfo{}, errors.New("ffprobe: no video stream present")
	}

	duration := r.DurationSeconds()
	if math.IsNaN(duration) {
		return MediaInfo{}, fmt.Errorf("ffprobe: unusable duration %q", r.Format.Duration)
	}

	fps, err := ParseFrameRate(video.RFrameRate)
	if err != nil {
		return MediaInfo{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return MediaInfo{}, fmt.Errorf("stat probed file: %w", err)
	}

	return MediaInfo{
		Duration: duration,
		Width:    video.Width,
		Height:   video.Height,
		FPS:      fps,
		FileSize: info.Size(),
	}, nil
}

// FirstVideoStream returns the first stream with codec_type video.
func (r Result) FirstVideoStream() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return stream, true
		}
	}
	return Stream{}, false
}

// VideoStreamCount returns the number of video streams discovered.
func (r Result) VideoStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			count++
		}
	}
	return count
}

// AudioStreamCount returns the number of audio streams discovered.
func (r Result) AudioStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			count++
		}
	}
	return count
}

// DurationSeconds returns the container duration in seconds, or NaN when
// unparsable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// ParseFrameRate evaluates an ffprobe rational such as "30000/1001" to a
// float without premature rounding. A bare number is accepted as-is. Empty
// and zero-denominator rationals evaluate to 0.
func ParseFrameRate(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, nil
	}

	num, den, found := strings.Cut(cleaned, "/")
	if !found {
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, fmt.Errorf("frame rate %q: %w", value, err)
		}
		return parsed, nil
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("frame rate %q: %w", value, err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil {
		return 0, fmt.Errorf("frame rate %q: %w", value, err)
	}
	if d == 0 {
		return 0, nil
	}
	return n / d, nil
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return math.NaN()
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
