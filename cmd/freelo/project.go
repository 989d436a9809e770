package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/metalagman/freelo/internal/model"
	"github.com/metalagman/freelo/internal/records"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(projectAddCmd())
	cmd.AddCommand(projectListCmd())
	cmd.AddCommand(projectUpdateCmd())
	cmd.AddCommand(projectDeleteCmd())
	return cmd
}

func projectAddCmd() *cobra.Command {
	var description, status, clientID string
	var rate float64
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				p, err := rt.store.InsertProject(ctx, model.Project{
					OwnerID:     rt.cfg.Owner,
					ClientID:    optionalString(cmd, "client", clientID),
					Name:        strings.Join(args, " "),
					Description: description,
					Status:      status,
					HourlyRate:  rate,
				})
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(p)
				}
				log.Info().Msgf("project %s added", p.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&status, "status", "", "status (active|paused|completed|cancelled)")
	cmd.Flags().StringVar(&clientID, "client", "", "client id")
	cmd.Flags().Float64Var(&rate, "rate", 0, "hourly rate")
	return cmd
}

func projectListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				items, err := rt.store.ListProjects(ctx, rt.cfg.Owner, optionalString(cmd, "status", status))
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(items)
				}
				rows := make([]table.Row, 0, len(items))
				for _, p := range items {
					rows = append(rows, table.Row{p.ID, p.Name, p.Status, deref(p.ClientID), fmt.Sprintf("%.2f", p.HourlyRate)})
				}
				renderTable(table.Row{"ID", "Name", "Status", "Client", "Rate"}, rows)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "status filter")
	return cmd
}

func projectUpdateCmd() *cobra.Command {
	var name, description, status, clientID string
	var rate float64
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upd := records.ProjectUpdate{
				Name:        optionalString(cmd, "name", name),
				Description: optionalString(cmd, "description", description),
				Status:      optionalString(cmd, "status", status),
				ClientID:    optionalString(cmd, "client", clientID),
			}
			if cmd.Flags().Changed("rate") {
				upd.HourlyRate = &rate
			}
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				p, err := rt.store.UpdateProject(ctx, rt.cfg.Owner, args[0], upd)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(p)
				}
				log.Info().Msgf("project %s updated", p.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "project name")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&status, "status", "", "status (active|paused|completed|cancelled)")
	cmd.Flags().StringVar(&clientID, "client", "", "client id, empty to detach")
	cmd.Flags().Float64Var(&rate, "rate", 0, "hourly rate")
	return cmd
}

func projectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				if err := rt.store.DeleteProject(ctx, rt.cfg.Owner, args[0]); err != nil {
					return err
				}
				log.Info().Msgf("project %s deleted", args[0])
				return nil
			})
		},
	}
}
