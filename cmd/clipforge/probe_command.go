package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"clipforge/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a media file's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			info, err := ffprobe.Probe(cmd.Context(), cfg.FFprobeBinary(), args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, map[string]any{
					"duration":  info.Duration,
					"width":     info.Width,
					"height":    info.Height,
					"fps":       info.FPS,
					"file_size": info.FileSize,
				})
			}
			rows := [][]string{
				{"Duration", formatDuration(info.Duration)},
				{"Resolution", fmt.Sprintf("%dx%d", info.Width, info.Height)},
				{"Frame rate", strconv.FormatFloat(info.FPS, 'f', -1, 64) + " fps"},
				{"Size", formatBytes(info.FileSize)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit metadata as JSON")
	return cmd
}
