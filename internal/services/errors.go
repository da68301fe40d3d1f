package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDownload marks a failed or non-2xx remote fetch.
	ErrDownload = errors.New("download error")
	// ErrProbe marks failed or unparsable metadata extraction.
	ErrProbe = errors.New("probe error")
	// ErrMix marks a failed audio mixing or trimming invocation.
	ErrMix = errors.New("mix error")
	// ErrMux marks a failed video/audio combination.
	ErrMux = errors.New("mux error")
	// ErrPostProcess marks a failed platform optimize, watermark, or
	// thumbnail operation.
	ErrPostProcess = errors.New("post-process error")
	// ErrValidation marks a request the pipeline refuses to start.
	ErrValidation = errors.New("validation error")
	// ErrSynthesis is the umbrella marker the pipeline wraps every stage
	// failure with before surfacing it to the caller.
	ErrSynthesis = errors.New("synthesis error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrSynthesis
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short name for the stage marker found in the error chain,
// skipping the umbrella marker. Unclassified errors report "unknown".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrDownload):
		return "download"
	case errors.Is(err, ErrProbe):
		return "probe"
	case errors.Is(err, ErrMix):
		return "mix"
	case errors.Is(err, ErrMux):
		return "mux"
	case errors.Is(err, ErrPostProcess):
		return "post-process"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrSynthesis):
		return "synthesis"
	default:
		return "unknown"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
