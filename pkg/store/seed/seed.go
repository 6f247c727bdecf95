package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/graveboards/gbctl/internal/logger"
	"github.com/graveboards/gbctl/pkg/store"
)

// Entry is the outcome of one seeder run.
type Entry struct {
	Target   string `json:"target"`
	Inserted int64  `json:"inserted"`
	Skipped  int64  `json:"skipped"`
	Failed   int64  `json:"failed"`
}

// Report aggregates the outcome of a seed invocation.
type Report struct {
	Entries []Entry `json:"entries"`
}

// Inserted returns the total number of rows inserted.
func (r *Report) Inserted() int64 {
	var total int64
	for _, e := range r.Entries {
		total += e.Inserted
	}
	return total
}

// Failed returns the total number of fixture rows that errored.
func (r *Report) Failed() int64 {
	var total int64
	for _, e := range r.Entries {
		total += e.Failed
	}
	return total
}

type seeder interface {
	run(ctx context.Context, db *gorm.DB) (Entry, error)
}

func newSeeder(t seederTarget) seeder {
	switch t {
	case seederUser:
		return userSeeder{}
	case seederQueue:
		return queueSeeder{}
	case seederBeatmapset:
		return beatmapsetSeeder{}
	default:
		return requestSeeder{}
	}
}

// Run inserts the fixture sets selected by target, expanding dependencies
// and executing seeders layer by layer. Fixture rows that already exist are
// skipped; rows that fail are reported per fixture without aborting the
// rest. Seeding is additive and requires no confirmation.
func Run(ctx context.Context, st *store.Store, target Target) (*Report, error) {
	if err := st.Ping(ctx); err != nil {
		return nil, err
	}

	layers, err := resolve(targetSet(target))
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, layer := range layers {
		for _, t := range layer {
			entry, err := newSeeder(t).run(ctx, st.DB())
			if err != nil {
				return nil, fmt.Errorf("seeding %s: %w", t, err)
			}
			report.Entries = append(report.Entries, entry)
			logger.Info("seeded", "target", entry.Target,
				"inserted", entry.Inserted, "skipped", entry.Skipped, "failed", entry.Failed)
		}
	}

	if failed := report.Failed(); failed > 0 {
		return report, fmt.Errorf("%d fixture rows failed", failed)
	}

	return report, nil
}

type userSeeder struct{}

func (userSeeder) run(ctx context.Context, db *gorm.DB) (Entry, error) {
	entry := Entry{Target: string(seederUser)}

	fixtures, err := loadFixtures[userFixture]("users.yaml")
	if err != nil {
		return entry, err
	}

	for _, f := range fixtures {
		var inserted bool
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			user := store.User{ID: f.ID}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user)
			if res.Error != nil {
				return res.Error
			}
			inserted = res.RowsAffected > 0

			for _, roleName := range f.Roles {
				role := store.Role{Name: roleName}
				if err := tx.Where(role).FirstOrCreate(&role).Error; err != nil {
					return err
				}
				if err := tx.Model(&user).Association("Roles").Append(&role); err != nil {
					return err
				}
			}

			// Every user gets a score fetcher task, disabled until an
			// operator or the backend enables it.
			task := store.ScoreFetcherTask{UserID: f.ID}
			return tx.Where(store.ScoreFetcherTask{UserID: f.ID}).FirstOrCreate(&task).Error
		})
		if err != nil {
			entry.Failed++
			logger.Warn("user fixture failed", "fixture", fmt.Sprintf("user:%d", f.ID), "error", err)
			continue
		}
		if inserted {
			entry.Inserted++
		} else {
			entry.Skipped++
		}
	}

	return entry, nil
}

type queueSeeder struct{}

func (queueSeeder) run(ctx context.Context, db *gorm.DB) (Entry, error) {
	entry := Entry{Target: string(seederQueue)}

	fixtures, err := loadFixtures[queueFixture]("queues.yaml")
	if err != nil {
		return entry, err
	}

	for _, f := range fixtures {
		queue := store.Queue{
			UserID:      f.OwnerID,
			Name:        f.Name,
			Description: f.Description,
		}
		res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&queue)
		if res.Error != nil {
			entry.Failed++
			logger.Warn("queue fixture failed", "fixture", f.Name, "error", res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			entry.Skipped++
		} else {
			entry.Inserted++
		}
	}

	return entry, nil
}

type beatmapsetSeeder struct{}

func (beatmapsetSeeder) run(ctx context.Context, db *gorm.DB) (Entry, error) {
	entry := Entry{Target: string(seederBeatmapset)}

	fixtures, err := loadFixtures[beatmapsetFixture]("beatmapsets.yaml")
	if err != nil {
		return entry, err
	}

	for _, f := range fixtures {
		set := store.Beatmapset{
			ID:        f.ID,
			CreatorID: f.CreatorID,
			Title:     f.Title,
			Artist:    f.Artist,
		}
		res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&set)
		if res.Error != nil {
			entry.Failed++
			logger.Warn("beatmapset fixture failed", "fixture", fmt.Sprintf("beatmapset:%d", f.ID), "error", res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			entry.Skipped++
		} else {
			entry.Inserted++
		}
	}

	return entry, nil
}

type requestSeeder struct{}

func (requestSeeder) run(ctx context.Context, db *gorm.DB) (Entry, error) {
	entry := Entry{Target: string(seederRequest)}

	fixtures, err := loadFixtures[requestFixture]("requests.yaml")
	if err != nil {
		return entry, err
	}

	for _, f := range fixtures {
		var queue store.Queue
		if err := db.WithContext(ctx).Where(store.Queue{Name: f.Queue}).First(&queue).Error; err != nil {
			entry.Failed++
			logger.Warn("request fixture failed", "fixture", f.Queue, "error",
				fmt.Errorf("queue %q not found: %w", f.Queue, err))
			continue
		}

		// Requests carry no natural unique key; the (user, queue,
		// beatmapset) triple is the duplicate check.
		var existing int64
		err := db.WithContext(ctx).Model(&store.Request{}).
			Where("user_id = ? AND queue_id = ? AND beatmapset_id = ?", f.UserID, queue.ID, f.BeatmapsetID).
			Count(&existing).Error
		if err != nil {
			entry.Failed++
			continue
		}
		if existing > 0 {
			entry.Skipped++
			continue
		}

		request := store.Request{
			UserID:       f.UserID,
			QueueID:      queue.ID,
			BeatmapsetID: f.BeatmapsetID,
			Comment:      f.Comment,
			Status:       f.Status,
		}
		if err := db.WithContext(ctx).Create(&request).Error; err != nil {
			entry.Failed++
			logger.Warn("request fixture failed", "fixture", fmt.Sprintf("request:%d/%d", f.UserID, f.BeatmapsetID), "error", err)
			continue
		}
		entry.Inserted++
	}

	return entry, nil
}
