package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"budgetctl/pkg/api"
	"budgetctl/pkg/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "budgetctl",
	Short: "Budget tracking command-line interface",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

// buildDeps loads configuration and wires the logger and the backend
// client every subcommand needs.
func buildDeps(cmd *cobra.Command) (*config.Config, *log.Logger, *api.Client, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "budgetctl",
		Level:           level,
	})

	client := api.New(cfg.ServerURL, cfg.UserID, logger)
	return cfg, logger, client, nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	// Flag defaults mirror the config defaults; an unchanged flag never
	// overrides a config file value.
	rootCmd.PersistentFlags().String("server_url", "http://localhost:8080", "Backend base URL")
	rootCmd.PersistentFlags().Int("user_id", 0, "Backend user id")
	rootCmd.PersistentFlags().String("log_level", "info", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(exportCmd)
	addEntityCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
