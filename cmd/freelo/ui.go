package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/metalagman/freelo/internal/logging"
	"github.com/metalagman/freelo/internal/tui"
)

func uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Chat with the assistant in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				pipeline, err := newPipeline(rt.cfg, rt.store)
				if err != nil {
					return err
				}
				// Log lines would corrupt the alternate screen.
				logging.InitWriter(io.Discard, debug, logFormat)
				return tui.Run(ctx, pipeline, rt.cfg.Owner)
			})
		},
	}
}
