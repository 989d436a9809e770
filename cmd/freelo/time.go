package main

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/metalagman/freelo/internal/model"
)

func timeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Track time on projects",
	}
	cmd.AddCommand(timeStartCmd())
	cmd.AddCommand(timeStopCmd())
	cmd.AddCommand(timeListCmd())
	cmd.AddCommand(timeDeleteCmd())
	return cmd
}

func timeStartCmd() *cobra.Command {
	var taskID, description string
	var nonBillable bool
	cmd := &cobra.Command{
		Use:   "start <project-id>",
		Short: "Start a timer on a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				e, err := rt.store.StartTimer(ctx, model.TimeEntry{
					OwnerID:     rt.cfg.Owner,
					ProjectID:   args[0],
					TaskID:      optionalString(cmd, "task", taskID),
					Description: description,
					Billable:    !nonBillable,
				})
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(e)
				}
				log.Info().Msgf("timer %s started", e.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&taskID, "task", "", "task id")
	cmd.Flags().StringVar(&description, "description", "", "what you are working on")
	cmd.Flags().BoolVar(&nonBillable, "non-billable", false, "mark the entry as not billable")
	return cmd
}

func timeStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <entry-id>",
		Short: "Stop a running timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				e, err := rt.store.StopTimer(ctx, rt.cfg.Owner, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(e)
				}
				log.Info().Msgf("timer %s stopped after %d min", e.ID, e.DurationMinutes)
				return nil
			})
		},
	}
}

func timeListCmd() *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				items, err := rt.store.ListTimeEntries(ctx, rt.cfg.Owner, projectID)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(items)
				}
				rows := make([]table.Row, 0, len(items))
				total := 0
				for _, e := range items {
					state := fmt.Sprintf("%d min", e.DurationMinutes)
					if e.Running() {
						state = "running"
					}
					total += e.DurationMinutes
					rows = append(rows, table.Row{e.ID, e.ProjectID, deref(e.TaskID), e.StartedAt.Local().Format("2006-01-02 15:04"), state, e.Billable})
				}
				renderTable(table.Row{"ID", "Project", "Task", "Started", "Duration", "Billable"}, rows)
				fmt.Printf("total: %d min\n", total)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project filter")
	return cmd
}

func timeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a time entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				if err := rt.store.DeleteTimeEntry(ctx, rt.cfg.Owner, args[0]); err != nil {
					return err
				}
				log.Info().Msgf("time entry %s deleted", args[0])
				return nil
			})
		},
	}
}
