package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohameddacar/xasuusqor/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(cfg.DataDir)
		if err != nil {
			return err
		}
		defer database.Close()

		migrator := db.NewMigrator(database.DB)
		if err := migrator.Initialize(); err != nil {
			return err
		}
		if err := migrator.Up(); err != nil {
			return err
		}

		version, err := migrator.CurrentVersion()
		if err != nil {
			return err
		}
		fmt.Printf("Database is at version %d\n", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
