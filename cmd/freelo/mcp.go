package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/metalagman/freelo/internal/mcpserver"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the assistant as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				pipeline, err := newPipeline(rt.cfg, rt.store)
				if err != nil {
					return err
				}
				server, err := mcpserver.New(mcpserver.Config{
					Records:   rt.store,
					Assistant: pipeline,
					OwnerID:   rt.cfg.Owner,
					Version:   version,
				})
				if err != nil {
					return err
				}
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				return mcpserver.Serve(ctx, server)
			})
		},
	}
}
