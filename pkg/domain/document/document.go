package document

import (
	"errors"
	"time"

	"github.com/pgvector/pgvector-go"
)

var ErrDuplicateQuestion = errors.New("document with the same question already exists")

// Document is a replicated question/answer record in the target store.
// Embedding columns stay NULL until the sync pipeline attaches vectors;
// rows without a question embedding are not searchable.
type Document struct {
	ID                int64            `json:"id" gorm:"primaryKey"`
	Question          string           `json:"question" gorm:"uniqueIndex:documents_question_key"`
	Answer            string           `json:"answer"`
	Link              string           `json:"link"`
	QuestionDate      *time.Time       `json:"question_date"`
	QuestionEmbedding *pgvector.Vector `json:"-" gorm:"column:question_embedding"`
	AnswerEmbedding   *pgvector.Vector `json:"-" gorm:"column:answer_embedding"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}
