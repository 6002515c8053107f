package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"client-portal-api/internal/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the portal tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd)
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "log each migrated table")
	return cmd
}

func runMigrate(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db, newLogger(cmd)); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(database.Models()))
	return nil
}
