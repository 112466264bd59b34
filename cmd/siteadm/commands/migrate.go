package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Spok95/geosites/internal/infra/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		d, err := dsn()
		if err != nil {
			return err
		}
		if err := db.Migrate(d); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		d, err := dsn()
		if err != nil {
			return err
		}
		return db.MigrationStatus(d)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateStatusCmd)
}
