package ffmpeg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Corner identifies a watermark overlay position.
type Corner string

const (
	CornerTopLeft     Corner = "top-left"
	CornerTopRight    Corner = "top-right"
	CornerBottomLeft  Corner = "bottom-left"
	CornerBottomRight Corner = "bottom-right"
)

// ParseCorner normalizes a user-supplied corner name.
func ParseCorner(value string) (Corner, error) {
	switch Corner(strings.ToLower(strings.TrimSpace(value))) {
	case CornerTopLeft:
		return CornerTopLeft, nil
	case CornerTopRight:
		return CornerTopRight, nil
	case CornerBottomLeft:
		return CornerBottomLeft, nil
	case CornerBottomRight:
		return CornerBottomRight, nil
	default:
		return "", fmt.Errorf("unknown corner %q", value)
	}
}

func (c Corner) overlayExpr(inset int) (string, error) {
	px := strconv.Itoa(inset)
	switch c {
	case CornerTopLeft:
		return px + ":" + px, nil
	case CornerTopRight:
		return "main_w-overlay_w-" + px + ":" + px, nil
	case CornerBottomLeft:
		return px + ":main_h-overlay_h-" + px, nil
	case CornerBottomRight:
		return "main_w-overlay_w-" + px + ":main_h-overlay_h-" + px, nil
	default:
		return "", fmt.Errorf("unknown corner %q", string(c))
	}
}

// TranscodeAudioSpec describes a single-track audio re-encode.
type TranscodeAudioSpec struct {
	Input       string
	Output      string
	Codec       string
	Bitrate     string
	MaxDuration float64 // seconds; 0 means no cap
}

func (s TranscodeAudioSpec) args() ([]string, error) {
	if s.Input == "" || s.Output == "" {
		return nil, errors.New("transcode audio: input and output required")
	}
	args := []string{"-y", "-i", s.Input, "-vn", "-c:a", defaultString(s.Codec, "aac"), "-b:a", defaultString(s.Bitrate, "192k")}
	if s.MaxDuration > 0 {
		args = append(args, "-t", formatSeconds(s.MaxDuration))
	}
	args = append(args, s.Output)
	return args, nil
}

// MixSpec describes a multi-track amplitude mixdown.
type MixSpec struct {
	Inputs      []string
	Output      string
	Codec       string
	Bitrate     string
	MaxDuration float64 // seconds; 0 means no cap
}

func (s MixSpec) args() ([]string, error) {
	if len(s.Inputs) < 2 {
		return nil, errors.New("mix audio: at least two inputs required")
	}
	if s.Output == "" {
		return nil, errors.New("mix audio: output required")
	}
	args := []string{"-y"}
	for _, input := range s.Inputs {
		if input == "" {
			return nil, errors.New("mix audio: empty input path")
		}
		args = append(args, "-i", input)
	}
	// duration=first: the mix is as long as the first listed track; inputs
	// that end earlier fall silent rather than looping.
	filter := fmt.Sprintf("amix=inputs=%d:duration=first:dropout_transition=2", len(s.Inputs))
	args = append(args, "-filter_complex", filter,
		"-c:a", defaultString(s.Codec, "aac"),
		"-b:a", defaultString(s.Bitrate, "192k"),
	)
	if s.MaxDuration > 0 {
		args = append(args, "-t", formatSeconds(s.MaxDuration))
	}
	args = append(args, s.Output)
	return args, nil
}

// MuxSpec describes combining a video stream with an optional audio track.
type MuxSpec struct {
	Video      string
	Audio      string // empty for video-only output
	Output     string
	VideoCodec string
	AudioCodec string
	Bitrate    string
}

func (s MuxSpec) args() ([]string, error) {
	if s.Video == "" || s.Output == "" {
		return nil, errors.New("mux: video and output required")
	}
	args := []string{"-y", "-i", s.Video}
	if s.Audio != "" {
		args = append(args, "-i", s.Audio, "-map", "0:v:0", "-map", "1:a:0")
	}
	args = append(args,
		"-c:v", defaultString(s.VideoCodec, "libx264"),
		"-b:v", defaultString(s.Bitrate, "2M"),
	)
	if s.Audio != "" {
		// Stop at the shorter stream; excess audio or video is discarded.
		args = append(args, "-c:a", defaultString(s.AudioCodec, "aac"), "-shortest")
	}
	args = append(args, s.Output)
	return args, nil
}

// ScalePadSpec describes a platform re-encode with exact target geometry.
type ScalePadSpec struct {
	Input        string
	Output       string
	Width        int
	Height       int
	FrameRate    int
	VideoBitrate string
	AudioBitrate string
}

func (s ScalePadSpec) args() ([]string, error) {
	if s.Input == "" || s.Output == "" {
		return nil, errors.New("scale+pad: input and output required")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("scale+pad: invalid target %dx%d", s.Width, s.Height)
	}
	filter := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black",
		s.Width, s.Height, s.Width, s.Height,
	)
	args := []string{"-y", "-i", s.Input, "-vf", filter}
	if s.FrameRate > 0 {
		args = append(args, "-r", strconv.Itoa(s.FrameRate))
	}
	args = append(args,
		"-c:v", "libx264",
		"-b:v", defaultString(s.VideoBitrate, "2M"),
		"-c:a", "aac",
		"-b:a", defaultString(s.AudioBitrate, "128k"),
		s.Output,
	)
	return args, nil
}

// OverlaySpec describes a watermark overlay.
type OverlaySpec struct {
	Input     string
	Watermark string
	Output    string
	Corner    Corner
	Inset     int // pixels; 0 uses the default inset
}

func (s OverlaySpec) args() ([]string, error) {
	if s.Input == "" || s.Watermark == "" || s.Output == "" {
		return nil, errors.New("overlay: input, watermark, and output required")
	}
	inset := s.Inset
	if inset <= 0 {
		inset = 10
	}
	corner := s.Corner
	if corner == "" {
		corner = CornerBottomRight
	}
	position, err := corner.overlayExpr(inset)
	if err != nil {
		return nil, err
	}
	return []string{
		"-y", "-i", s.Input, "-i", s.Watermark,
		"-filter_complex", "overlay=" + position,
		"-c:a", "copy",
		s.Output,
	}, nil
}

// FrameSpec describes a single-frame extraction.
type FrameSpec struct {
	Input  string
	Output string
	Offset float64 // seconds from the start; 0 grabs the first frame
}

func (s FrameSpec) args() ([]string, error) {
	if s.Input == "" || s.Output == "" {
		return nil, errors.New("extract frame: input and output required")
	}
	if s.Offset < 0 {
		return nil, fmt.Errorf("extract frame: negative offset %v", s.Offset)
	}
	return []string{
		"-y", "-ss", formatSeconds(s.Offset),
		"-i", s.Input,
		"-frames:v", "1", "-q:v", "2",
		s.Output,
	}, nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
