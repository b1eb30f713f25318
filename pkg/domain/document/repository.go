package document

import (
	"context"
	"time"

	"github.com/pgvector/pgvector-go"
)

type Repository interface {
	List(ctx context.Context) ([]Document, error)
	// ListQuestions returns every replicated question key. It is a coarse
	// snapshot; Insert's conflict detection is the authoritative guard.
	ListQuestions(ctx context.Context) ([]string, error)
	// Insert creates the row and returns ErrDuplicateQuestion when the
	// unique constraint on question is hit.
	Insert(ctx context.Context, doc *Document) error
	TouchQuestionDate(ctx context.Context, question string, date *time.Time) error
	UpdateEmbeddings(ctx context.Context, id int64, question, answer pgvector.Vector) error
	// Search ranks rows with a non-null question embedding by cosine
	// similarity against the query vector, keeping scores above threshold.
	Search(ctx context.Context, query pgvector.Vector, limit int, threshold float64) ([]ScoredDocument, error)
}
