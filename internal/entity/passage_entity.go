package entity

import "textbook-qa-be/internal/constant"

// Passage is the unit of retrieval: a contiguous excerpt of textbook text
// with page attribution. Similarity is nil when the retrieval backend did
// not report a score.
type Passage struct {
	Content    string   `json:"content"`
	PageNumber int      `json:"page_number"`
	Section    string   `json:"section,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
}

// SimilarityOrDefault returns the reported score, or the neutral prior when
// the backend did not score this passage.
func (p Passage) SimilarityOrDefault() float64 {
	if p.Similarity == nil {
		return constant.DefaultSimilarityPrior
	}
	return *p.Similarity
}
