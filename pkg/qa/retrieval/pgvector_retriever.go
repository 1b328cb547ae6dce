package retrieval

import (
	"context"
	"fmt"
	"time"

	"textbook-qa-be/internal/entity"
	"textbook-qa-be/internal/pkg/logger"
	"textbook-qa-be/internal/repository/unitofwork"
	"textbook-qa-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PgVectorRetriever embeds the query and runs a cosine-similarity search
// against the document's chunk embeddings. Identical queries within the cache
// TTL reuse the previous result set.
type PgVectorRetriever struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
	cache             *cache.Cache
}

func NewPgVectorRetriever(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	logger logger.ILogger,
) *PgVectorRetriever {
	return &PgVectorRetriever{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
		cache:             cache.New(5*time.Minute, 10*time.Minute),
	}
}

var _ Retriever = &PgVectorRetriever{}

func (r *PgVectorRetriever) Search(ctx context.Context, query string, documentId uuid.UUID, userId uuid.UUID, topK int) ([]entity.Passage, error) {
	cacheKey := fmt.Sprintf("%s|%s|%d|%s", userId, documentId, topK, query)
	if cached, found := r.cache.Get(cacheKey); found {
		return cached.([]entity.Passage), nil
	}

	embeddingResult, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, &RetrievalError{Stage: "query embedding", Cause: err}
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.DocumentChunkRepository().SearchSimilarWithScore(ctx, embeddingResult.Embedding.Values, topK, documentId, userId)
	if err != nil {
		return nil, &RetrievalError{Stage: "vector search", Cause: err}
	}

	passages := make([]entity.Passage, 0, len(scored))
	for _, s := range scored {
		similarity := s.Similarity
		passages = append(passages, entity.Passage{
			Content:    s.Chunk.Content,
			PageNumber: s.Chunk.PageNumber,
			Section:    s.Chunk.Section,
			Similarity: &similarity,
		})
	}

	r.logger.Debug("retrieval", "Similarity search completed", map[string]interface{}{
		"document_id": documentId.String(),
		"passages":    len(passages),
	})

	r.cache.Set(cacheKey, passages, cache.DefaultExpiration)
	return passages, nil
}
