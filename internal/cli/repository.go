// filepath: internal/cli/repository.go
package cli

import (
	"context"
	"fmt"
	"mediacatalog/internal/config"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/repository"
	"mediacatalog/internal/repository/jsonfile"
	"mediacatalog/internal/repository/sqlite"
)

// openRepository opens the configured store. A SQLite database is migrated on
// first use and must be at the latest schema version afterwards.
func openRepository(ctx context.Context, c *config.Config) (repository.Repository, error) {
	switch c.Database.Driver {
	case config.DriverJSONFile:
		logging.Log.Infof("Using JSON document store at '%s'", c.Database.Path)
		repo, err := jsonfile.NewRepository(c.Database.Path)
		if err != nil {
			return nil, err
		}
		return repo, nil

	case config.DriverSQLite:
		logging.Log.Infof("Using SQLite store at '%s'", c.Database.Path)
		repo, err := sqlite.NewRepository(c.Database.Path)
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureSchemaBootstrapped(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to bootstrap database: %w", err)
		}
		if err := repo.ValidateSchema(ctx); err != nil {
			repo.Close()
			logging.Log.Error("---------------------------------------------------------------")
			logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
			logging.Log.Error("---------------------------------------------------------------")
			return nil, err
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
}
