// Package repository persists the theme application history in a local
// sqlite database.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tingeapp/tinge/internal/models"
)

// HistoryRepository records and queries theme applications.
type HistoryRepository interface {
	Record(ctx context.Context, rec *models.ApplyRecord) error
	List(ctx context.Context, limit int) ([]*models.ApplyRecord, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// historyRepo implements HistoryRepository using GORM.
type historyRepo struct {
	db *gorm.DB
}

// Open opens (creating if needed) the history database at path and migrates
// the schema. Use ":memory:" for an ephemeral database.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := db.AutoMigrate(&models.ApplyRecord{}); err != nil {
		return nil, fmt.Errorf("migrating history schema: %w", err)
	}
	return db, nil
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *gorm.DB) *historyRepo {
	return &historyRepo{db: db}
}

// Record appends one application to the history.
func (r *historyRepo) Record(ctx context.Context, rec *models.ApplyRecord) error {
	if rec.AppliedAt.IsZero() {
		rec.AppliedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("recording apply: %w", err)
	}
	return nil
}

// List returns the most recent applications, newest first. A limit of 0 or
// less returns everything.
func (r *historyRepo) List(ctx context.Context, limit int) ([]*models.ApplyRecord, error) {
	var records []*models.ApplyRecord
	query := r.db.WithContext(ctx).Order("applied_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return records, nil
}

// PruneOlderThan deletes records applied before cutoff and returns how many
// were removed.
func (r *historyRepo) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("applied_at < ?", cutoff).Delete(&models.ApplyRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("pruning history: %w", result.Error)
	}
	return result.RowsAffected, nil
}
