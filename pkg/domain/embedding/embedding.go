package embedding

import (
	"time"
)

// Embedding is a fixed-length vector produced for one text. Value always
// has exactly the configured dimension; implementations repair short or
// over-length provider output before returning it.
type Embedding struct {
	Value     []float32 `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// Zero returns the deterministic all-zero fallback vector.
func Zero(dimension int) *Embedding {
	return &Embedding{
		Value:     make([]float32, dimension),
		CreatedAt: time.Now(),
	}
}
