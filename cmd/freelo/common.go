package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/metalagman/freelo/internal/assistant"
	"github.com/metalagman/freelo/internal/config"
	"github.com/metalagman/freelo/internal/db"
	"github.com/metalagman/freelo/internal/llm"
	"github.com/metalagman/freelo/internal/records"
)

type runtime struct {
	cfg   config.Config
	db    *sql.DB
	store *records.Store
}

func openRuntime() (*runtime, func(), error) {
	repoRoot, err := os.Getwd()
	if err != nil {
		return nil, func() {}, err
	}
	cfg, err := loadConfig(repoRoot)
	if err != nil {
		return nil, func() {}, err
	}
	conn, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, func() {}, err
	}
	rt := &runtime{cfg: cfg, db: conn, store: records.NewStore(conn)}
	return rt, func() { _ = conn.Close() }, nil
}

func withRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime) error) error {
	rt, closeFn, err := openRuntime()
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(cmd.Context(), rt)
}

func newPipeline(cfg config.Config, store *records.Store) (*assistant.Pipeline, error) {
	gen, err := llm.New(cfg.Model, nil)
	if err != nil {
		return nil, err
	}
	return assistant.New(store, gen,
		assistant.WithTimeout(cfg.Model.Timeout),
		assistant.WithDefaults(assistant.Defaults{
			Priority:      cfg.Assistant.DefaultPriority,
			ProjectStatus: cfg.Assistant.DefaultProjectStatus,
			ClientStatus:  cfg.Assistant.DefaultClientStatus,
		}),
	), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func optionalString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
