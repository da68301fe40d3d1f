package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/media/ffmpeg"
	"clipforge/internal/postprocess"
)

func newOptimizeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize <file> <platform>",
		Short: "Re-encode a video for a distribution platform",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			processor, err := ctx.processor()
			if err != nil {
				return err
			}
			output, err := processor.Optimize(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	return cmd
}

func newWatermarkCommand(ctx *commandContext) *cobra.Command {
	var corner string

	cmd := &cobra.Command{
		Use:   "watermark <file> <image>",
		Short: "Stamp a watermark image onto a video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := ffmpeg.ParseCorner(corner)
			if err != nil {
				return err
			}
			processor, err := ctx.processor()
			if err != nil {
				return err
			}
			output, err := processor.Watermark(cmd.Context(), args[0], args[1], position)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&corner, "corner", string(ffmpeg.CornerBottomRight),
		"Watermark position: top-left, top-right, bottom-left, bottom-right")
	return cmd
}

func newThumbnailCommand(ctx *commandContext) *cobra.Command {
	var offset float64

	cmd := &cobra.Command{
		Use:   "thumbnail <file>",
		Short: "Extract a JPEG thumbnail from a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			processor, err := ctx.processor()
			if err != nil {
				return err
			}
			output, err := processor.Thumbnail(cmd.Context(), args[0], offset)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().Float64Var(&offset, "offset", 0, "Timestamp in seconds to grab the frame from")
	return cmd
}

func newPlatformsCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "platforms",
		Short:       "List supported distribution platforms",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			platforms := postprocess.Platforms()

			if jsonOut {
				return writeJSON(cmd, platforms)
			}
			rows := make([][]string, 0, len(platforms))
			for _, profile := range platforms {
				rows = append(rows, []string{
					profile.Name,
					profile.Resolution(),
					fmt.Sprintf("%d", profile.FrameRate),
					profile.VideoBitrate,
					profile.AudioBitrate,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Platform", "Resolution", "FPS", "Video Bitrate", "Audio Bitrate"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit profiles as JSON")
	return cmd
}
