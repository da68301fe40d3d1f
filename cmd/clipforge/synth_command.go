package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"clipforge/internal/deps"
	"clipforge/internal/synthesis"
)

func newSynthCommand(ctx *commandContext) *cobra.Command {
	var (
		videoURL   string
		audioURL   string
		musicURL   string
		format     string
		videoCodec string
		audioCodec string
		bitrate    string
		jsonOut    bool
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize a video from remote media sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s (run `clipforge deps`)", strings.Join(missing, ", "))
			}

			pipeline, err := synthesis.New(cfg, synthesis.WithLogger(ctx.ensureLogger()))
			if err != nil {
				return err
			}

			result, err := pipeline.Synthesize(cmd.Context(), synthesis.Request{
				VideoURL:     videoURL,
				AudioURL:     audioURL,
				MusicURL:     musicURL,
				OutputFormat: format,
				VideoCodec:   videoCodec,
				AudioCodec:   audioCodec,
				Bitrate:      bitrate,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			rows := [][]string{
				{"Output", result.OutputPath},
				{"Format", result.Format},
				{"Duration", formatDuration(result.Duration)},
				{"Size", formatBytes(result.FileSize)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&videoURL, "video", "", "Source video URL (required)")
	cmd.Flags().StringVar(&audioURL, "audio", "", "Voiceover audio URL")
	cmd.Flags().StringVar(&musicURL, "music", "", "Background music URL")
	cmd.Flags().StringVar(&format, "format", "", "Output container (mp4, mov, webm)")
	cmd.Flags().StringVar(&videoCodec, "video-codec", "", "Video codec override")
	cmd.Flags().StringVar(&audioCodec, "audio-codec", "", "Audio codec override")
	cmd.Flags().StringVar(&bitrate, "bitrate", "", "Video bitrate override")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")
	_ = cmd.MarkFlagRequired("video")

	return cmd
}

func formatDuration(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 2, 64) + "s"
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
