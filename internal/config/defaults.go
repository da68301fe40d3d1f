package config

const (
	defaultTempRoot          = "~/.local/share/clipforge/tmp"
	defaultOutputRoot        = "~/.local/share/clipforge/output"
	defaultLogDir            = "~/.local/share/clipforge/logs"
	defaultOutputFormat      = "mp4"
	defaultVideoCodec        = "libx264"
	defaultAudioCodec        = "aac"
	defaultBitrate           = "2M"
	defaultMixAudioBitrate   = "192k"
	defaultFetchTimeout      = 120
	defaultStaleSessionHours = 24
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			TempRoot:   defaultTempRoot,
			OutputRoot: defaultOutputRoot,
			LogDir:     defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
		Encoding: Encoding{
			OutputFormat:    defaultOutputFormat,
			VideoCodec:      defaultVideoCodec,
			AudioCodec:      defaultAudioCodec,
			Bitrate:         defaultBitrate,
			MixAudioBitrate: defaultMixAudioBitrate,
		},
		Fetch: Fetch{
			TimeoutSeconds: defaultFetchTimeout,
		},
		Cleanup: Cleanup{
			StaleSessionHours: defaultStaleSessionHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
