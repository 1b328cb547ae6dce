package contract

import (
	"context"

	"textbook-qa-be/internal/entity"
	"textbook-qa-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredDocumentChunk pairs a chunk with its cosine similarity to a query.
type ScoredDocumentChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64
}

type DocumentChunkRepository interface {
	Create(ctx context.Context, chunk *entity.DocumentChunk) error
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	Update(ctx context.Context, chunk *entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilarWithScore runs a cosine-similarity search over the chunks of
	// one document, restricted to documents owned by userId. Results carry the
	// similarity in [0,1]; ordering is an implementation detail callers must
	// not rely on.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, documentId uuid.UUID, userId uuid.UUID) ([]*ScoredDocumentChunk, error)
}
