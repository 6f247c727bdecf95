// Package store manages the Graveboards database schema and its lifecycle:
// migrations, destructive reset, bootstrap rows and status reporting.
// It is an operator tool, not a request-serving path; the database's own
// transactional guarantees are the only locking discipline required.
package store

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/graveboards/gbctl/pkg/config"
)

// Store wraps the database connection used by lifecycle commands.
type Store struct {
	db  *gorm.DB
	cfg *config.Config
}

// Open connects to the configured database. An unreachable database is
// reported as *UnavailableError without any mutation.
func Open(cfg *config.Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, &UnavailableError{Target: "database", Err: err}
	}

	return &Store{db: db, cfg: cfg}, nil
}

// DB returns the underlying gorm handle. Useful for seeding and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping verifies the database accepts queries.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &UnavailableError{Target: "database", Err: err}
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying database: %w", err)
	}
	return sqlDB.Close()
}
