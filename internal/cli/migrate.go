// filepath: internal/cli/migrate.go
package cli

import (
	"context"
	"fmt"
	"mediacatalog/internal/config"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/repository/sqlite"

	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration tools",
	Long:  `Manage the SQLite schema version. Use subcommands 'up', 'down', or 'status'.`,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Migrate the database to the most recent version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd.Context(), "up")
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the database by one version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd.Context(), "down")
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Dump the migration status for the current DB",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd.Context(), "status")
	},
}

func init() {
	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)
	migrateCmd.AddCommand(statusCmd)
}

// runMigration opens the database without the startup schema check, so an
// outdated database can still be migrated.
func runMigration(ctx context.Context, command string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Database.Driver != config.DriverSQLite {
		return fmt.Errorf("migrations only apply to the %q driver (configured: %q)", config.DriverSQLite, cfg.Database.Driver)
	}

	repo, err := sqlite.NewRepository(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	logging.Log.Infof("Running migration command: %s", command)
	if err := repo.Migrate(ctx, command); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logging.Log.Info("Migration operation completed successfully.")
	return nil
}
