package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/geniehq/genie-search/pkg/domain/document"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) document.Repository {
	return &DocumentRepository{
		db: db,
	}
}

func (r *DocumentRepository) List(ctx context.Context) ([]document.Document, error) {
	var entities []document.Document
	err := r.db.WithContext(ctx).Model(&document.Document{}).
		Order("id asc").
		Find(&entities).Error
	return entities, err
}

func (r *DocumentRepository) ListQuestions(ctx context.Context) ([]string, error) {
	var questions []string
	err := r.db.WithContext(ctx).Model(&document.Document{}).
		Pluck("question", &questions).Error
	return questions, err
}

func (r *DocumentRepository) Insert(ctx context.Context, doc *document.Document) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return document.ErrDuplicateQuestion
		}
		return err
	}
	return nil
}

func (r *DocumentRepository) TouchQuestionDate(ctx context.Context, question string, date *time.Time) error {
	return r.db.WithContext(ctx).Model(&document.Document{}).
		Where("question = ?", question).
		Updates(map[string]interface{}{
			"question_date": date,
			"updated_at":    time.Now(),
		}).Error
}

func (r *DocumentRepository) UpdateEmbeddings(ctx context.Context, id int64, question, answer pgvector.Vector) error {
	return r.db.WithContext(ctx).Model(&document.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"question_embedding": question,
			"answer_embedding":   answer,
			"updated_at":         time.Now(),
		}).Error
}

// Search ranks by cosine similarity using the vector extension's <=>
// operator. Rows without a question embedding are excluded entirely
// rather than scored against a zero vector.
func (r *DocumentRepository) Search(
	ctx context.Context,
	query pgvector.Vector,
	limit int,
	threshold float64,
) ([]document.ScoredDocument, error) {
	var results []document.ScoredDocument
	err := r.db.WithContext(ctx).Raw(`
		SELECT *, 1 - (question_embedding <=> ?) AS score
		FROM documents
		WHERE question_embedding IS NOT NULL
		  AND 1 - (question_embedding <=> ?) > ?
		ORDER BY score DESC
		LIMIT ?`,
		query, query, threshold, limit,
	).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
