package main

import (
	"github.com/spf13/cobra"
	"github.com/yukikurage/project-tracker/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and seed lookup tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if err := database.Migrate(database.GetDB(), log); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	},
}
