package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/graveboards/gbctl/internal/logger"
	"github.com/graveboards/gbctl/pkg/config"
)

// Reset drops and recreates every managed schema object, destroying all
// data, then reapplies migrations and the bootstrap rows. The drop and
// recreate run in one transaction so a failure leaves the schema either
// untouched or fully dropped-and-recreated, never half-dropped.
//
// The caller is responsible for confirmation; Reset itself never prompts.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.Ping(ctx); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DROP SCHEMA public CASCADE").Error; err != nil {
			return err
		}
		return tx.Exec("CREATE SCHEMA public").Error
	})
	if err != nil {
		return fmt.Errorf("failed to recreate schema: %w", err)
	}
	logger.Info("schema dropped and recreated")

	if err := s.Migrate(ctx); err != nil {
		return err
	}

	return s.Bootstrap(ctx)
}

// Bootstrap inserts the rows every deployment needs: the role set, the
// configured administrator accounts with enabled score fetching, an API key
// for the primary administrator and the master queue. Idempotent; safe to
// run against a database that already has them.
func (s *Store) Bootstrap(ctx context.Context) error {
	apiKey, err := config.GenerateSecret(config.SecretLength)
	if err != nil {
		return fmt.Errorf("failed to generate api key: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		adminRole := Role{Name: RoleAdmin}
		if err := tx.Where(adminRole).FirstOrCreate(&adminRole).Error; err != nil {
			return err
		}
		privilegedRole := Role{Name: RolePrivileged}
		if err := tx.Where(privilegedRole).FirstOrCreate(&privilegedRole).Error; err != nil {
			return err
		}

		for _, userID := range s.cfg.AdminUserIDs {
			user := User{ID: userID}
			if err := tx.FirstOrCreate(&user).Error; err != nil {
				return err
			}
			if err := tx.Model(&user).Association("Roles").Append(&adminRole); err != nil {
				return err
			}

			task := ScoreFetcherTask{UserID: userID}
			if err := tx.Where(ScoreFetcherTask{UserID: userID}).FirstOrCreate(&task).Error; err != nil {
				return err
			}
			if err := tx.Model(&task).Update("enabled", true).Error; err != nil {
				return err
			}
		}

		primary := s.cfg.PrimaryAdminID()

		key := APIKey{
			Key:       apiKey,
			UserID:    primary,
			ExpiresAt: time.Now().UTC().Add(7 * 24 * time.Hour),
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&key).Error; err != nil {
			return err
		}

		queue := Queue{
			UserID:      primary,
			Name:        MasterQueueName,
			Description: MasterQueueDescription,
		}
		return tx.Where(Queue{Name: MasterQueueName}).FirstOrCreate(&queue).Error
	})
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	logger.Info("bootstrap rows applied", "admins", len(s.cfg.AdminUserIDs))
	return nil
}
