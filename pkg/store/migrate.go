package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for golang-migrate

	"github.com/graveboards/gbctl/internal/logger"
	"github.com/graveboards/gbctl/pkg/config"
	"github.com/graveboards/gbctl/pkg/store/migrations"
)

// newMigrator opens a migration handle over a fresh database/sql connection.
// golang-migrate requires database/sql rather than gorm's pool; it also takes
// a Postgres advisory lock so concurrent runs never interleave.
func newMigrator(ctx context.Context, cfg *config.PostgresConfig) (*migrate.Migrate, *sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, &UnavailableError{Target: "database", Err: err}
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{
		MigrationsTable: "schema_migrations",
		DatabaseName:    cfg.Database,
	})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, db, nil
}

// Migrate applies all pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	m, db, err := newMigrator(ctx, &s.cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Debug("no migrations to apply")
	} else {
		logger.Info("migrations applied")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if err == nil {
		logger.Debug("schema version", "version", version, "dirty", dirty)
		if dirty {
			logger.Warn("schema is in dirty state, manual intervention may be required")
		}
	}

	return nil
}

// MigrationVersion returns the current schema version. A zero version with
// applied=false means no migrations have run yet.
func (s *Store) MigrationVersion(ctx context.Context) (version uint, dirty bool, applied bool, err error) {
	m, db, err := newMigrator(ctx, &s.cfg.Postgres)
	if err != nil {
		return 0, false, false, err
	}
	defer db.Close()

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, err
	}

	return version, dirty, true, nil
}
