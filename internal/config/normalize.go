package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeEncoding()
	c.normalizeLogging()
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = defaultFetchTimeout
	}
	if c.Cleanup.StaleSessionHours <= 0 {
		c.Cleanup.StaleSessionHours = defaultStaleSessionHours
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.TempRoot, err = expandPath(c.Paths.TempRoot); err != nil {
		return fmt.Errorf("paths.temp_root: %w", err)
	}
	if c.Paths.OutputRoot, err = expandPath(c.Paths.OutputRoot); err != nil {
		return fmt.Errorf("paths.output_root: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = "ffmpeg"
	}
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = "ffprobe"
	}
}

func (c *Config) normalizeEncoding() {
	c.Encoding.OutputFormat = strings.ToLower(strings.TrimSpace(c.Encoding.OutputFormat))
	c.Encoding.VideoCodec = strings.TrimSpace(c.Encoding.VideoCodec)
	c.Encoding.AudioCodec = strings.TrimSpace(c.Encoding.AudioCodec)
	c.Encoding.Bitrate = strings.TrimSpace(c.Encoding.Bitrate)
	c.Encoding.MixAudioBitrate = strings.TrimSpace(c.Encoding.MixAudioBitrate)
	if c.Encoding.OutputFormat == "" {
		c.Encoding.OutputFormat = defaultOutputFormat
	}
	if c.Encoding.VideoCodec == "" {
		c.Encoding.VideoCodec = defaultVideoCodec
	}
	if c.Encoding.AudioCodec == "" {
		c.Encoding.AudioCodec = defaultAudioCodec
	}
	if c.Encoding.Bitrate == "" {
		c.Encoding.Bitrate = defaultBitrate
	}
	if c.Encoding.MixAudioBitrate == "" {
		c.Encoding.MixAudioBitrate = defaultMixAudioBitrate
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
