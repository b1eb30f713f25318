package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/geniehq/genie-search/pkg/domain/progress"
)

const pgUndefinedTable = "42P01"

type SyncProgressRepository struct {
	db *gorm.DB
}

func NewSyncProgressRepository(db *gorm.DB) progress.Tracker {
	return &SyncProgressRepository{
		db: db,
	}
}

func (r *SyncProgressRepository) HighWaterMark(ctx context.Context) (int64, error) {
	var mark progress.Mark
	err := r.db.WithContext(ctx).First(&mark, "id = ?", 1).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
			return 0, fmt.Errorf("%w: %v", progress.ErrTrackingNotConfigured, err)
		}
		return 0, err
	}
	return mark.LastSourceID, nil
}

// Advance is a last-writer-wins upsert of the singleton row. Overlapping
// passes may overwrite each other but the mark stays a valid boundary.
func (r *SyncProgressRepository) Advance(ctx context.Context, mark int64) error {
	entity := progress.Mark{
		ID:           1,
		LastSourceID: mark,
		UpdatedAt:    time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_source_id", "updated_at"}),
	}).Create(&entity).Error
}
