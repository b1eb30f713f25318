package request

import (
	"errors"
)

type SearchRequest struct {
	Query     string   `json:"query" binding:"required"`
	Limit     *int     `json:"limit"`
	Threshold *float64 `json:"threshold"`
}

func (r *SearchRequest) Validate() error {
	if r.Query == "" {
		return errors.New("query is required")
	}
	if r.Limit != nil && *r.Limit <= 0 {
		return errors.New("limit must be positive")
	}
	if r.Threshold != nil && (*r.Threshold < 0 || *r.Threshold > 1) {
		return errors.New("threshold must be between 0 and 1")
	}
	return nil
}
