package response

import (
	domain "github.com/geniehq/genie-search/pkg/domain/document"
)

// DocumentResponse is the public shape of a replicated document. Nullable
// source fields are coerced to empty strings.
type DocumentResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Link     string `json:"link"`
	Date     string `json:"date"`
}

func NewDocumentResponse(doc *domain.Document) DocumentResponse {
	date := ""
	if doc.QuestionDate != nil {
		date = doc.QuestionDate.Format("2006-01-02")
	}
	return DocumentResponse{
		Question: doc.Question,
		Answer:   doc.Answer,
		Link:     doc.Link,
		Date:     date,
	}
}
