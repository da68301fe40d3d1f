// Package postprocess adapts finished videos for distribution platforms:
// resolution and bitrate profiles, watermark overlays, and thumbnail stills.
package postprocess
