package main

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/memorizer/internal/database"
)

func newMigrateCommand() *cobra.Command {
	migrateCommand := &cobra.Command{
		Use:   "migrate",
		Short: "Migration commands",
	}

	migrateCommand.AddCommand(newMigrateDatabaseCommand("up", "Apply every pending migration", database.Migrate))
	migrateCommand.AddCommand(newMigrateDatabaseCommand("down", "Revert every migration", database.MigrateDown))

	return migrateCommand
}

func newMigrateDatabaseCommand(use, short string, apply func(db *sqlx.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if serverURL != "" {
				return errors.New("migrations run against the local database; remove --server")
			}
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := apply(db); err != nil {
				return fmt.Errorf("migrate %s > %w", use, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s %s database\n", use, cfg.Database.Driver)
			return nil
		},
	}
}
