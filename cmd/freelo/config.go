package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/metalagman/freelo/internal/config"
)

func resolveConfigPath(repoRoot, path string) string {
	if path == "" {
		path = config.DefaultPath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}

func loadConfig(repoRoot string) (config.Config, error) {
	path := resolveConfigPath(repoRoot, cfgFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("config %s not found, run `freelo init` first", path)
	}
	cfg, err := config.Load(viper.New(), path)
	if err != nil {
		return config.Config{}, err
	}
	if !filepath.IsAbs(cfg.Database.Path) {
		cfg.Database.Path = filepath.Join(repoRoot, cfg.Database.Path)
	}
	if ownerFlag != "" {
		cfg.Owner = ownerFlag
	}
	return cfg, nil
}
