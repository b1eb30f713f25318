package embedding

import (
	"context"
)

// Creator produces a fixed-length embedding for one text. Provider
// failures are recovered inside the implementation with the zero-vector
// fallback, so callers always receive a well-formed vector.
type Creator interface {
	Generate(ctx context.Context, text string) (*Embedding, error)
}
