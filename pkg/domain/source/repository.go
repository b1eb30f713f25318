package source

import (
	"context"
)

type Repository interface {
	// ListSince returns every record with an id greater than mark,
	// ordered by id ascending.
	ListSince(ctx context.Context, mark int64) ([]Record, error)
}
