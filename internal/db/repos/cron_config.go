package repos

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jobradar/jobradar/internal/db/models"
)

// CronConfigRepository provides access to the keyed schedule configuration
type CronConfigRepository struct {
	db *gorm.DB
}

// NewCronConfigRepository creates a new cron config repository instance
func NewCronConfigRepository(db *gorm.DB) *CronConfigRepository {
	return &CronConfigRepository{db: db}
}

// Get retrieves a config row by key. A missing key returns (nil, nil) so the
// caller can fall back to its default without special error handling.
func (r *CronConfigRepository) Get(ctx context.Context, key string) (*models.CronConfig, error) {
	var cfg models.CronConfig
	err := r.db.WithContext(ctx).Where(&models.CronConfig{Key: key}).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cron config %s: %w", key, err)
	}
	return &cfg, nil
}

// Set upserts the value and description for a key
func (r *CronConfigRepository) Set(ctx context.Context, key, value, description string) (*models.CronConfig, error) {
	var cfg models.CronConfig
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.CronConfig{Key: key}).First(&cfg).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cfg = models.CronConfig{Key: key, Value: value, Description: description}
			return tx.Create(&cfg).Error
		}
		if err != nil {
			return err
		}
		cfg.Value = value
		cfg.Description = description
		return tx.Save(&cfg).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set cron config %s: %w", key, err)
	}
	return &cfg, nil
}
