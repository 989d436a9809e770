package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <message>",
		Short: "Send one message to the assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return fmt.Errorf("message is required")
			}
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				pipeline, err := newPipeline(rt.cfg, rt.store)
				if err != nil {
					return err
				}
				reply := pipeline.HandleUtterance(ctx, rt.cfg.Owner, text)
				if jsonOutput {
					if err := printJSON(reply); err != nil {
						return err
					}
				} else if reply.OK {
					fmt.Println(reply.Message)
				}
				if !reply.OK {
					return errors.New(reply.ErrorMessage)
				}
				return nil
			})
		},
	}
}
