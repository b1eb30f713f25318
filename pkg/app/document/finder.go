package document

import (
	"context"

	domain "github.com/geniehq/genie-search/pkg/domain/document"
	domainerrors "github.com/geniehq/genie-search/pkg/domain/errors"
)

type Finder interface {
	FindAll(ctx context.Context) ([]domain.Document, error)
}

type finder struct {
	repo domain.Repository
}

func NewFinder(repository domain.Repository) Finder {
	return &finder{
		repo: repository,
	}
}

func (f *finder) FindAll(ctx context.Context) ([]domain.Document, error) {
	docs, err := f.repo.List(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreUnavailableError("target", err)
	}
	return docs, nil
}
