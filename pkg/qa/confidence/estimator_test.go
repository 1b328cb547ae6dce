package confidence

import (
	"testing"

	"textbook-qa-be/internal/entity"
)

func floatPtr(v float64) *float64 { return &v }

func TestEstimate(t *testing.T) {
	tests := []struct {
		name     string
		passages []entity.Passage
		want     float64
	}{
		{
			name:     "no passages means zero confidence",
			passages: nil,
			want:     0,
		},
		{
			name: "single scored passage",
			passages: []entity.Passage{
				{Similarity: floatPtr(0.9)},
			},
			want: 0.9,
		},
		{
			name: "mean of scores",
			passages: []entity.Passage{
				{Similarity: floatPtr(0.6)},
				{Similarity: floatPtr(0.8)},
			},
			want: 0.7,
		},
		{
			name: "unscored passages use the neutral prior",
			passages: []entity.Passage{
				{Similarity: nil},
				{Similarity: nil},
			},
			want: 0.8,
		},
		{
			name: "mixed scored and unscored",
			passages: []entity.Passage{
				{Similarity: floatPtr(0.6)},
				{Similarity: nil}, // counts as 0.8
			},
			want: 0.7,
		},
		{
			name: "rounded to two decimals",
			passages: []entity.Passage{
				{Similarity: floatPtr(0.333)},
				{Similarity: floatPtr(0.333)},
				{Similarity: floatPtr(0.333)},
			},
			want: 0.33,
		},
		{
			name: "rounds half up",
			passages: []entity.Passage{
				{Similarity: floatPtr(0.555)},
			},
			want: 0.56,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.passages)
			if got != tt.want {
				t.Errorf("Estimate() = %v, want %v", got, tt.want)
			}
		})
	}
}
