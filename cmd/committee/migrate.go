package main

import (
	"github.com/spf13/cobra"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(*cobra.Command, []string) error {
			db, err := openDB(cfg.DB.Path)
			if err != nil {
				return err
			}
			logger.Info("schema up to date", "path", cfg.DB.Path)
			return db.Close()
		},
	}
}
