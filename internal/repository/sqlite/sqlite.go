// filepath: internal/repository/sqlite/sqlite.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mediacatalog/internal/db/migrations"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/repository"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

// UserCacheTTL bounds how long a user lookup is served from memory. Another
// process writing the same file (a CLI import) is seen after at most this long.
const UserCacheTTL = 30 * time.Second

// SQLiteRepository stores the catalog in an embedded SQLite database.
type SQLiteRepository struct {
	DB      *sql.DB
	Cache   *cache.Cache
	Builder squirrel.StatementBuilderType // SQL Query Builder
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// NewRepository opens (or creates) the database file at path.
// The schema is not touched; call EnsureSchemaBootstrapped and ValidateSchema.
func NewRepository(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writers, so every transaction sees the
	// latest committed state.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Log.Debugf("Opened SQLite database at %s", path)

	return &SQLiteRepository{
		DB:      db,
		Cache:   cache.New(UserCacheTTL, 2*UserCacheTTL),
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Close closes the database connection.
func (s *SQLiteRepository) Close() error {
	return s.DB.Close()
}

func configureGoose() error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(logging.Log)
	return goose.SetDialect("sqlite3")
}

// Migrate runs a goose command ("up", "down" or "status") against the
// embedded migrations.
func (s *SQLiteRepository) Migrate(ctx context.Context, command string) error {
	if err := configureGoose(); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	// The migrations are embedded at the root of the FS.
	const dir = "."

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, s.DB, dir)
	case "down":
		err = goose.DownContext(ctx, s.DB, dir)
	case "status":
		err = goose.StatusContext(ctx, s.DB, dir)
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	// Cached users may reference rows that no longer exist.
	s.Cache.Flush()
	return nil
}

// EnsureSchemaBootstrapped applies every migration when the database has never
// been migrated. Databases that already carry a goose version table are left
// to the explicit 'migrate' command.
func (s *SQLiteRepository) EnsureSchemaBootstrapped(ctx context.Context) error {
	var name string
	err := s.DB.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name='goose_db_version'",
	).Scan(&name)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	logging.Log.Info("Fresh database detected, applying migrations...")
	return s.Migrate(ctx, "up")
}

// ValidateSchema fails when the database is behind the newest embedded migration.
func (s *SQLiteRepository) ValidateSchema(ctx context.Context) error {
	if err := configureGoose(); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	current, err := goose.GetDBVersionContext(ctx, s.DB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	all, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("failed to collect migrations: %w", err)
	}
	last, err := all.Last()
	if err != nil {
		return fmt.Errorf("failed to determine latest migration: %w", err)
	}

	if current < last.Version {
		return fmt.Errorf("database schema is outdated (current: %d, required: %d); run 'mediacatalog migrate up'", current, last.Version)
	}
	return nil
}
