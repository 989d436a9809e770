package main

import (
	"context"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/metalagman/freelo/internal/model"
	"github.com/metalagman/freelo/internal/records"
)

func clientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients",
	}
	cmd.AddCommand(clientAddCmd())
	cmd.AddCommand(clientListCmd())
	cmd.AddCommand(clientUpdateCmd())
	cmd.AddCommand(clientDeleteCmd())
	return cmd
}

func clientAddCmd() *cobra.Command {
	var email, company, phone, status string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a client",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				c, err := rt.store.InsertClient(ctx, model.Client{
					OwnerID: rt.cfg.Owner,
					Name:    strings.Join(args, " "),
					Email:   email,
					Company: company,
					Phone:   phone,
					Status:  status,
				})
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(c)
				}
				log.Info().Msgf("client %s added", c.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&company, "company", "", "company name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&status, "status", "", "status (active|inactive)")
	return cmd
}

func clientListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				items, err := rt.store.ListClients(ctx, rt.cfg.Owner)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(items)
				}
				rows := make([]table.Row, 0, len(items))
				for _, c := range items {
					rows = append(rows, table.Row{c.ID, c.Name, c.Company, c.Email, c.Status})
				}
				renderTable(table.Row{"ID", "Name", "Company", "Email", "Status"}, rows)
				return nil
			})
		},
	}
}

func clientUpdateCmd() *cobra.Command {
	var name, email, company, phone, status string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			upd := records.ClientUpdate{
				Name:    optionalString(cmd, "name", name),
				Email:   optionalString(cmd, "email", email),
				Company: optionalString(cmd, "company", company),
				Phone:   optionalString(cmd, "phone", phone),
				Status:  optionalString(cmd, "status", status),
			}
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				c, err := rt.store.UpdateClient(ctx, rt.cfg.Owner, args[0], upd)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(c)
				}
				log.Info().Msgf("client %s updated", c.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "client name")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&company, "company", "", "company name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&status, "status", "", "status (active|inactive)")
	return cmd
}

func clientDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *runtime) error {
				if err := rt.store.DeleteClient(ctx, rt.cfg.Owner, args[0]); err != nil {
					return err
				}
				log.Info().Msgf("client %s deleted", args[0])
				return nil
			})
		},
	}
}
