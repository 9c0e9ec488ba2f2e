package main

import (
	"equestrian/internal/storage/postgresql"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create database tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		storage, err := postgresql.New(ctx, cfg.DSN)
		if err != nil {
			return err
		}
		defer storage.Stop()

		if err := storage.Migrate(ctx); err != nil {
			return err
		}

		log.Info("schema is up to date")
		return nil
	},
}
