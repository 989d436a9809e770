package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/metalagman/freelo/internal/model"
	"github.com/metalagman/freelo/internal/records"
)

func taskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(taskAddCmd())
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskUpdateCmd())
	cmd.AddCommand(taskDoneCmd())
	cmd.AddCommand(taskDeleteCmd())
	return cmd
}

func parseDue(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	due, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("parse due date %q: want YYYY-MM-DD", value)
	}
	return &due, nil
}

func taskAddCmd() *cobra.Command {
	var projectID, description, priority, status, due string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := parseDue(due)
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				t, err := rt.store.InsertTask(ctx, model.Task{
					OwnerID:     rt.cfg.Owner,
					ProjectID:   optionalString(cmd, "project", projectID),
					Title:       strings.Join(args, " "),
					Description: description,
					Status:      status,
					Priority:    priority,
					DueDate:     dueDate,
				})
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(t)
				}
				log.Info().Msgf("task %s added", t.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (low|medium|high)")
	cmd.Flags().StringVar(&status, "status", "", "status (todo|in_progress|done)")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	return cmd
}

func taskListCmd() *cobra.Command {
	var f records.TaskFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				items, err := rt.store.ListTasks(ctx, rt.cfg.Owner, f)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(items)
				}
				rows := make([]table.Row, 0, len(items))
				for _, t := range items {
					rows = append(rows, table.Row{t.ID, t.Title, t.Status, t.Priority, deref(t.ProjectID), formatDate(t.DueDate)})
				}
				renderTable(table.Row{"ID", "Title", "Status", "Priority", "Project", "Due"}, rows)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.ProjectID, "project", "", "project filter")
	cmd.Flags().StringVar(&f.Status, "status", "", "status filter")
	cmd.Flags().StringVar(&f.Priority, "priority", "", "priority filter")
	return cmd
}

func taskUpdateCmd() *cobra.Command {
	var title, projectID, description, priority, status, due string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dueDate, err := parseDue(due)
			if err != nil {
				return err
			}
			upd := records.TaskUpdate{
				Title:       optionalString(cmd, "title", title),
				ProjectID:   optionalString(cmd, "project", projectID),
				Description: optionalString(cmd, "description", description),
				Priority:    optionalString(cmd, "priority", priority),
				Status:      optionalString(cmd, "status", status),
				DueDate:     dueDate,
			}
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				t, err := rt.store.UpdateTask(ctx, rt.cfg.Owner, args[0], upd)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(t)
				}
				log.Info().Msgf("task %s updated", t.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&projectID, "project", "", "project id, empty to detach")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (low|medium|high)")
	cmd.Flags().StringVar(&status, "status", "", "status (todo|in_progress|done)")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	return cmd
}

func taskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				if _, err := rt.store.MarkTaskStatus(ctx, rt.cfg.Owner, args[0], model.TaskDone); err != nil {
					return err
				}
				log.Info().Msgf("task %s done", args[0])
				return nil
			})
		},
	}
}

func taskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				if err := rt.store.DeleteTask(ctx, rt.cfg.Owner, args[0]); err != nil {
					return err
				}
				log.Info().Msgf("task %s deleted", args[0])
				return nil
			})
		},
	}
}
