package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/yukikurage/project-tracker/internal/config"
	"github.com/yukikurage/project-tracker/internal/database"
	"github.com/yukikurage/project-tracker/internal/logging"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Project tracker - clients, projects, tasks and logged time",
	Long: `Tracker serves the project tracking API: clients and employees,
their projects, the tasks inside them, task pushes and logged jobs.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

// bootstrap loads configuration, builds the logger and opens the database
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	if err := database.Connect(cfg, log); err != nil {
		_ = log.Sync()
		return nil, nil, err
	}

	return cfg, log, nil
}
