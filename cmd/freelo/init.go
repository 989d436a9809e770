package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/metalagman/freelo/internal/config"
	"github.com/metalagman/freelo/internal/db"
)

func defaultConfigYAML() ([]byte, error) {
	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return nil, fmt.Errorf("marshal default config: %w", err)
	}
	return data, nil
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a freelo workspace",
		Long:  "Initialize a freelo workspace by writing a default config and creating the database.",
		RunE: func(cmd *cobra.Command, args []string) error {
			repoRoot, err := os.Getwd()
			if err != nil {
				return err
			}
			return initWorkspace(repoRoot)
		},
	}
}

func initWorkspace(repoRoot string) error {
	configPath := resolveConfigPath(repoRoot, cfgFile)
	if _, err := os.Stat(configPath); err == nil {
		log.Info().Str("path", configPath).Msg("config already exists, skipping")
	} else if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		data, err := defaultConfigYAML()
		if err != nil {
			return err
		}
		log.Info().Str("path", configPath).Msg("installing default config")
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	} else {
		return fmt.Errorf("stat config: %w", err)
	}

	cfg, err := loadConfig(repoRoot)
	if err != nil {
		return err
	}
	conn, err := db.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer conn.Close()
	version, err := db.Version(conn)
	if err != nil {
		return err
	}
	log.Info().Str("path", cfg.Database.Path).Int64("schema_version", version).Msg("database ready")
	fmt.Println("freelo initialized successfully")
	return nil
}
