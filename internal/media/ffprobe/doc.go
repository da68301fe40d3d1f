// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no clipforge-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//   - MediaInfo: the reduced summary the pipeline consumes
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns the parsed Result
//   - Probe: executes ffprobe and derives a MediaInfo (duration, dimensions,
//     frame rate, on-disk size)
package ffprobe
