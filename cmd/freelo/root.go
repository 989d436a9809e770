package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/metalagman/freelo/internal/config"
	"github.com/metalagman/freelo/internal/logging"
)

var (
	cfgFile    string
	envFile    string
	debug      bool
	logFormat  string
	ownerFlag  string
	jsonOutput bool
	rootCmd    = &cobra.Command{
		Use:           "freelo",
		Short:         "freelo manages a freelancer's projects, clients and tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading config")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")
	flags.StringVar(&logFormat, "log-format", logging.FormatConsole, "log format (console|json)")
	flags.StringVar(&ownerFlag, "owner", "", "act as this owner id instead of the configured one")
	flags.BoolVar(&jsonOutput, "json", false, "print JSON instead of tables")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logging.Init(debug, logFormat)
		return loadEnvFile(envFile)
	}
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(uiCmd())
	rootCmd.AddCommand(mcpCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(clientCmd())
	rootCmd.AddCommand(taskCmd())
	rootCmd.AddCommand(timeCmd())
	return rootCmd.Execute()
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
