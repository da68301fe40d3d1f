package synthesis

import (
	"fmt"
	"strings"

	"clipforge/internal/config"
	"clipforge/internal/services"
)

// SoundEffect is a declared extension point for timed effect overlays. The
// mixing stage does not consume it yet; requests that set it are rejected so
// the field is never silently dropped.
type SoundEffect struct {
	URL       string
	StartTime float64
	Volume    float64
}

// Request describes one synthesis job. It lives for the duration of a single
// Synthesize call and is never persisted by this package.
type Request struct {
	VideoURL     string
	AudioURL     string // optional voiceover
	MusicURL     string // optional background music
	SoundEffects []SoundEffect

	// Encode overrides; empty fields fall back to configured defaults.
	OutputFormat string
	VideoCodec   string
	AudioCodec   string
	Bitrate      string
}

// Result describes the durable artifact of a successful run.
type Result struct {
	OutputPath string  `json:"output_path"`
	Duration   float64 `json:"duration"`
	FileSize   int64   `json:"file_size"`
	Format     string  `json:"format"`
}

// HasAudio reports whether any audio input is declared.
func (r Request) HasAudio() bool {
	return strings.TrimSpace(r.AudioURL) != "" || strings.TrimSpace(r.MusicURL) != ""
}

type audioInput struct {
	url    string
	prefix string
}

// audioInputs returns the declared audio inputs in mix order. The voiceover
// comes first: with multiple tracks the first listed input drives the nominal
// mix duration.
func (r Request) audioInputs() []audioInput {
	var inputs []audioInput
	if url := strings.TrimSpace(r.AudioURL); url != "" {
		inputs = append(inputs, audioInput{url: url, prefix: "audio"})
	}
	if url := strings.TrimSpace(r.MusicURL); url != "" {
		inputs = append(inputs, audioInput{url: url, prefix: "music"})
	}
	return inputs
}

// withDefaults returns a copy with encode settings resolved against the
// configured defaults.
func (r Request) withDefaults(enc config.Encoding) Request {
	out := r
	out.OutputFormat = strings.ToLower(strings.TrimSpace(out.OutputFormat))
	if out.OutputFormat == "" {
		out.OutputFormat = enc.OutputFormat
	}
	if strings.TrimSpace(out.VideoCodec) == "" {
		out.VideoCodec = enc.VideoCodec
	}
	if strings.TrimSpace(out.AudioCodec) == "" {
		out.AudioCodec = enc.AudioCodec
	}
	if strings.TrimSpace(out.Bitrate) == "" {
		out.Bitrate = enc.Bitrate
	}
	return out
}

// validate checks a defaults-resolved request.
func (r Request) validate() error {
	if strings.TrimSpace(r.VideoURL) == "" {
		return services.Wrap(services.ErrValidation, "request", "", "videoUrl is required", nil)
	}
	if !config.SupportedOutputFormat(r.OutputFormat) {
		return services.Wrap(services.ErrValidation, "request", "",
			fmt.Sprintf("unsupported output format %q (supported: mp4, mov, webm)", r.OutputFormat), nil)
	}
	if len(r.SoundEffects) > 0 {
		return services.Wrap(services.ErrValidation, "request", "",
			"soundEffects are not supported yet: timed effect overlay is not implemented in the mixing stage", nil)
	}
	return nil
}
