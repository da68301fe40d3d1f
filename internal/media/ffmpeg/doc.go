// Package ffmpeg drives the external ffmpeg binary for every codec operation
// the pipeline performs: audio trimming and transcoding, multi-track amplitude
// mixing, muxing, platform rescaling with letterbox padding, watermark
// overlay, and still-frame extraction.
//
// All invocations go through the Executor interface so tests can substitute a
// fake and assert on the planned argument lists without spawning processes.
// Argument construction lives in pure builders on the spec types; the Engine
// only validates, logs, and runs.
package ffmpeg
