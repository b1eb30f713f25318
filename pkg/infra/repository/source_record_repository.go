package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/geniehq/genie-search/pkg/domain/source"
)

type SourceRecordRepository struct {
	db *gorm.DB
}

func NewSourceRecordRepository(db *gorm.DB) source.Repository {
	return &SourceRecordRepository{
		db: db,
	}
}

func (r *SourceRecordRepository) ListSince(ctx context.Context, mark int64) ([]source.Record, error) {
	var records []source.Record
	err := r.db.WithContext(ctx).Model(&source.Record{}).
		Where("genie_id > ?", mark).
		Order("genie_id asc").
		Find(&records).Error
	return records, err
}
