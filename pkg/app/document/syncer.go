package document

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	domain "github.com/geniehq/genie-search/pkg/domain/document"
	domainerrors "github.com/geniehq/genie-search/pkg/domain/errors"
	"github.com/geniehq/genie-search/pkg/domain/embedding"
	"github.com/geniehq/genie-search/pkg/domain/progress"
	"github.com/geniehq/genie-search/pkg/domain/source"
	"github.com/geniehq/genie-search/pkg/infra/prometheus"
)

const defaultEmbedConcurrency = 4

type SyncResult struct {
	Synced int `json:"synced"`
}

// Syncer replicates new source records into the target store, enriching
// them with embeddings, and advances the high-water mark once per batch.
type Syncer interface {
	SyncOnce(ctx context.Context) (SyncResult, error)
}

type syncer struct {
	sourceRepo  source.Repository
	docRepo     domain.Repository
	tracker     progress.Tracker
	embedder    embedding.Creator
	logger      *logrus.Logger
	dimension   int
	concurrency int
}

func NewSyncer(
	sourceRepo source.Repository,
	docRepo domain.Repository,
	tracker progress.Tracker,
	embedder embedding.Creator,
	logger *logrus.Logger,
	dimension int,
	concurrency int,
) Syncer {
	if concurrency <= 0 {
		concurrency = defaultEmbedConcurrency
	}
	return &syncer{
		sourceRepo:  sourceRepo,
		docRepo:     docRepo,
		tracker:     tracker,
		embedder:    embedder,
		logger:      logger,
		dimension:   dimension,
		concurrency: concurrency,
	}
}

// SyncOnce runs one pass. Store failures abort the pass before the mark
// advances, so a rerun re-reads the same window; the dedup set and the
// unique constraint on question make the replay safe. Embedding provider
// failures never abort the pass, they degrade to zero vectors.
func (s *syncer) SyncOnce(ctx context.Context) (SyncResult, error) {
	mark, err := s.tracker.HighWaterMark(ctx)
	if err != nil {
		prometheus.SyncRunsTotal.WithLabelValues("error").Inc()
		if errors.Is(err, progress.ErrTrackingNotConfigured) {
			return SyncResult{}, err
		}
		return SyncResult{}, domainerrors.NewStoreUnavailableError("progress", err)
	}

	records, err := s.sourceRepo.ListSince(ctx, mark)
	if err != nil {
		prometheus.SyncRunsTotal.WithLabelValues("error").Inc()
		return SyncResult{}, domainerrors.NewStoreUnavailableError("source", err)
	}
	if len(records) == 0 {
		prometheus.SyncRunsTotal.WithLabelValues("ok").Inc()
		return SyncResult{Synced: 0}, nil
	}

	questions, err := s.docRepo.ListQuestions(ctx)
	if err != nil {
		prometheus.SyncRunsTotal.WithLabelValues("error").Inc()
		return SyncResult{}, domainerrors.NewStoreUnavailableError("target", err)
	}
	existing := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		existing[q] = struct{}{}
	}

	type pendingEmbed struct {
		id       int64
		question string
		answer   string
	}

	synced := 0
	var pending []pendingEmbed
	for _, rec := range records {
		if _, ok := existing[rec.Question]; ok {
			prometheus.SyncDocumentsTotal.WithLabelValues("skipped").Inc()
			continue
		}

		doc := &domain.Document{
			Question:     rec.Question,
			Answer:       deref(rec.Answer),
			Link:         deref(rec.Link),
			QuestionDate: rec.AskedAt,
		}
		if err := s.docRepo.Insert(ctx, doc); err != nil {
			if errors.Is(err, domain.ErrDuplicateQuestion) {
				// Lost the race against a concurrent pass; the row exists,
				// refresh its date and leave embedding to the pass that won.
				if err := s.docRepo.TouchQuestionDate(ctx, rec.Question, rec.AskedAt); err != nil {
					prometheus.SyncRunsTotal.WithLabelValues("error").Inc()
					return SyncResult{}, domainerrors.NewStoreUnavailableError("target", err)
				}
				prometheus.SyncDocumentsTotal.WithLabelValues("conflict").Inc()
				existing[rec.Question] = struct{}{}
				continue
			}
			prometheus.SyncRunsTotal.WithLabelValues("error").Inc()
			return SyncResult{}, domainerrors.NewStoreUnavailableError("target", err)
		}

		existing[rec.Question] = struct{}{}
		pending = append(pending, pendingEmbed{id: doc.ID, question: rec.Question, answer: doc.Answer})
		prometheus.SyncDocumentsTotal.WithLabelValues("synced").Inc()
		synced++
	}

	// Embedding calls are independent per record; fan out with a bounded
	// limit. Every embedding write must land before the mark advances.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, p := range pending {
		p := p
		g.Go(func() error {
			questionEmb := s.embed(gctx, p.question)
			answerEmb := embedding.Zero(s.dimension)
			if p.answer != "" {
				answerEmb = s.embed(gctx, p.answer)
			}
			if err := s.docRepo.UpdateEmbeddings(
				gctx, p.id,
				pgvector.NewVector(questionEmb.Value),
				pgvector.NewVector(answerEmb.Value),
			); err != nil {
				return domainerrors.NewStoreUnavailableError("target", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		prometheus.SyncRunsTotal.WithLabelValues("error").Inc()
		return SyncResult{}, err
	}

	newMark := records[len(records)-1].ID
	if err := s.tracker.Advance(ctx, newMark); err != nil {
		prometheus.SyncRunsTotal.WithLabelValues("error").Inc()
		return SyncResult{}, domainerrors.NewStoreUnavailableError("progress", err)
	}

	s.logger.WithFields(logrus.Fields{
		"synced":    synced,
		"seen":      len(records),
		"high_mark": newMark,
	}).Info("sync pass completed")
	prometheus.SyncRunsTotal.WithLabelValues("ok").Inc()

	return SyncResult{Synced: synced}, nil
}

func (s *syncer) embed(ctx context.Context, text string) *embedding.Embedding {
	emb, err := s.embedder.Generate(ctx, text)
	if err != nil || emb == nil || len(emb.Value) != s.dimension {
		if err != nil {
			s.logger.WithError(err).Warn("embedding generation failed, using zero vector")
		}
		return embedding.Zero(s.dimension)
	}
	return emb
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
