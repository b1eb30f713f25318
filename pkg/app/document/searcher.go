package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"

	domain "github.com/geniehq/genie-search/pkg/domain/document"
	"github.com/geniehq/genie-search/pkg/domain/embedding"
	domainerrors "github.com/geniehq/genie-search/pkg/domain/errors"
	"github.com/geniehq/genie-search/pkg/infra/prometheus"
)

const (
	DefaultSearchLimit     = 5
	DefaultSearchThreshold = 0.7
)

// Searcher answers free-text queries with the most similar replicated
// documents, most similar first. Only documents with an attached
// question embedding are candidates; an empty result is not an error.
type Searcher interface {
	Search(ctx context.Context, query string, limit int, threshold float64) ([]domain.ScoredDocument, error)
}

type searcher struct {
	repo     domain.Repository
	embedder embedding.Creator
	logger   *logrus.Logger
}

func NewSearcher(repository domain.Repository, embedder embedding.Creator, logger *logrus.Logger) Searcher {
	return &searcher{
		repo:     repository,
		embedder: embedder,
		logger:   logger,
	}
}

func (s *searcher) Search(ctx context.Context, query string, limit int, threshold float64) ([]domain.ScoredDocument, error) {
	prometheus.SearchRequestsTotal.Inc()

	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	emb, err := s.embedder.Generate(ctx, query)
	if err != nil {
		s.logger.WithError(err).Warn("query embedding failed")
		return nil, err
	}

	results, err := s.repo.Search(ctx, pgvector.NewVector(emb.Value), limit, threshold)
	if err != nil {
		return nil, domainerrors.NewStoreUnavailableError("target", err)
	}
	return results, nil
}

// Digest renders results into a human-readable block for text-based
// clients. It is a pure projection of the result sequence.
func Digest(results []domain.ScoredDocument) string {
	blocks := make([]string, 0, len(results))
	for _, res := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "Question: %s\n", res.Question)
		fmt.Fprintf(&b, "Answer: %s\n", res.Answer)
		fmt.Fprintf(&b, "Source: %s\n", res.Link)
		date := ""
		if res.QuestionDate != nil {
			date = res.QuestionDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "Date: %s\n", date)
		fmt.Fprintf(&b, "Relevance: %.3f", res.Score)
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
