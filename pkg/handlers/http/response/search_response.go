package response

import (
	domain "github.com/geniehq/genie-search/pkg/domain/document"
)

type SearchResultResponse struct {
	DocumentResponse
	Score float64 `json:"score"`
}

type SearchResponse struct {
	Results []SearchResultResponse `json:"results"`
	Digest  string                 `json:"digest"`
}

func NewSearchResponse(results []domain.ScoredDocument, digest string) SearchResponse {
	out := make([]SearchResultResponse, 0, len(results))
	for i := range results {
		out = append(out, SearchResultResponse{
			DocumentResponse: NewDocumentResponse(&results[i].Document),
			Score:            results[i].Score,
		})
	}
	return SearchResponse{
		Results: out,
		Digest:  digest,
	}
}
