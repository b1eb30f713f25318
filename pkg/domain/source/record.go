package source

import (
	"time"
)

// Record is a row of the upstream operational store. The pipeline only
// ever reads it; ids are monotonic and assigned by the source database.
type Record struct {
	ID       int64      `gorm:"column:genie_id;primaryKey"`
	Question string     `gorm:"column:genie_question"`
	Answer   *string    `gorm:"column:genie_answer"`
	Link     *string    `gorm:"column:genie_sourcelink"`
	AskedAt  *time.Time `gorm:"column:genie_questiondate"`
}

func (Record) TableName() string {
	return "tbl_genie_genie"
}
