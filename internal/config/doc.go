// Package config loads and validates the TOML configuration for the synthesis
// pipeline and CLI.
//
// Configuration sections:
//   - Paths: temp root for session working directories, output root for
//     durable artifacts, log directory
//   - Tools: ffmpeg/ffprobe binary overrides
//   - Encoding: default container, codecs, bitrates
//   - Fetch: HTTP download timeout
//   - Cleanup: stale session retention
//   - Logging: format and level
//
// Load resolves ~/.config/clipforge/config.toml, then ./clipforge.toml, then
// falls back to defaults. All path fields come back tilde-expanded and
// absolute.
package config
