package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"clipforge/internal/session"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var maxAge time.Duration

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stale session directories from the temp root",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			age := maxAge
			if age <= 0 {
				age = time.Duration(cfg.Cleanup.StaleSessionHours) * time.Hour
			}

			result, err := session.SweepStale(cfg.Paths.TempRoot, age, ctx.ensureLogger())
			if err != nil {
				if errors.Is(err, session.ErrSweepInProgress) {
					return fmt.Errorf("another clean is already running on %s", cfg.Paths.TempRoot)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d stale session directories\n", len(result.Removed))
			for _, sweepErr := range result.Errors {
				fmt.Fprintf(out, "Failed to remove %s: %v\n", sweepErr.Path, sweepErr.Error)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d directories could not be removed", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "Age threshold (e.g. 24h); defaults to the configured retention")
	return cmd
}
