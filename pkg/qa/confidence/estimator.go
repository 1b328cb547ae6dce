package confidence

import (
	"math"

	"textbook-qa-be/internal/entity"
)

// Estimate derives an answer confidence from the retrieval scores of the
// passages that grounded it: the mean similarity, rounded to two decimals.
// Unscored passages contribute the neutral prior. No passages means no
// grounding, so the confidence is zero.
func Estimate(passages []entity.Passage) float64 {
	if len(passages) == 0 {
		return 0
	}

	var sum float64
	for _, passage := range passages {
		sum += passage.SimilarityOrDefault()
	}

	mean := sum / float64(len(passages))
	return math.Round(mean*100) / 100
}
