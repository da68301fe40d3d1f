package config

import (
	"errors"
	"fmt"
)

var supportedOutputFormats = map[string]struct{}{
	"mp4":  {},
	"mov":  {},
	"webm": {},
}

// SupportedOutputFormat reports whether the container name is one the pipeline
// can produce.
func SupportedOutputFormat(format string) bool {
	_, ok := supportedOutputFormats[format]
	return ok
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.TempRoot == "" {
		return errors.New("paths.temp_root must be set")
	}
	if c.Paths.OutputRoot == "" {
		return errors.New("paths.output_root must be set")
	}
	if c.Paths.TempRoot == c.Paths.OutputRoot {
		return errors.New("paths.temp_root and paths.output_root must differ: the temp root is deleted per session")
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if !SupportedOutputFormat(c.Encoding.OutputFormat) {
		return fmt.Errorf("encoding.output_format: unsupported container %q (supported: mp4, mov, webm)", c.Encoding.OutputFormat)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
