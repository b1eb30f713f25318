package document

// ScoredDocument pairs a document with its cosine similarity score
// against a query embedding (1.0 is an exact match, 0.0 no similarity).
type ScoredDocument struct {
	Document
	Score float64 `json:"score"`
}
