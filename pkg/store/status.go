package store

import (
	"context"
	"fmt"
)

// TableCount is one table's row count in a status report.
type TableCount struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

// Status summarizes schema and seed state for the status command.
type Status struct {
	SchemaVersion     uint         `json:"schema_version"`
	Dirty             bool         `json:"dirty"`
	MigrationsApplied bool         `json:"migrations_applied"`
	Tables            []TableCount `json:"tables,omitempty"`
	Seeded            bool         `json:"seeded"`
}

// statusTables maps report labels to the models they count.
var statusTables = []struct {
	name  string
	model any
}{
	{"roles", &Role{}},
	{"users", &User{}},
	{"api_keys", &APIKey{}},
	{"score_fetcher_tasks", &ScoreFetcherTask{}},
	{"queues", &Queue{}},
	{"beatmapsets", &Beatmapset{}},
	{"requests", &Request{}},
}

// Status reports the current migration version and per-table row counts.
// Seeded is true once the database holds more than the bootstrap rows.
func (s *Store) Status(ctx context.Context) (*Status, error) {
	if err := s.Ping(ctx); err != nil {
		return nil, err
	}

	version, dirty, applied, err := s.MigrationVersion(ctx)
	if err != nil {
		return nil, err
	}

	status := &Status{
		SchemaVersion:     version,
		Dirty:             dirty,
		MigrationsApplied: applied,
	}

	if !applied {
		return status, nil
	}

	counts := make(map[string]int64, len(statusTables))
	for _, entry := range statusTables {
		var count int64
		if err := s.db.WithContext(ctx).Model(entry.model).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", entry.name, err)
		}
		status.Tables = append(status.Tables, TableCount{Table: entry.name, Count: count})
		counts[entry.name] = count
	}

	// Bootstrap alone yields the admin users, one queue and no content
	// tables; anything beyond that means seed data is present.
	status.Seeded = counts["beatmapsets"] > 0 ||
		counts["requests"] > 0 ||
		counts["queues"] > 1 ||
		counts["users"] > int64(len(s.cfg.AdminUserIDs))

	return status, nil
}
