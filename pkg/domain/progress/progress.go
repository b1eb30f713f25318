package progress

import (
	"context"
	"errors"
	"time"
)

// ErrTrackingNotConfigured signals that the progress tracking table is
// missing. This is an operator problem, not a transient store failure,
// and must not be retried silently.
var ErrTrackingNotConfigured = errors.New("sync progress tracking is not configured")

// Mark is the singleton high-water mark row. LastSourceID is the id of
// the last source record durably replicated into the target store; it
// only ever moves forward.
type Mark struct {
	ID           int16     `gorm:"primaryKey"`
	LastSourceID int64     `gorm:"column:last_source_id"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Mark) TableName() string {
	return "sync_progress"
}

type Tracker interface {
	// HighWaterMark returns 0 when no mark has been recorded yet.
	HighWaterMark(ctx context.Context) (int64, error)
	// Advance upserts the mark, last writer wins. Overlapping sync passes
	// may redo work but cannot corrupt the mark.
	Advance(ctx context.Context, mark int64) error
}
