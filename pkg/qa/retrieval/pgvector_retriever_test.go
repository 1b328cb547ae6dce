package retrieval

import (
	"context"
	"errors"
	"testing"

	"textbook-qa-be/internal/entity"
	"textbook-qa-be/internal/repository/contract"
	"textbook-qa-be/internal/repository/unitofwork"
	"textbook-qa-be/pkg/embedding"

	"github.com/google/uuid"
)

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakeChunkRepo struct {
	contract.DocumentChunkRepository

	results []*contract.ScoredDocumentChunk
	err     error

	gotLimit      int
	gotDocumentId uuid.UUID
	gotUserId     uuid.UUID
}

func (f *fakeChunkRepo) SearchSimilarWithScore(ctx context.Context, emb []float32, limit int, documentId uuid.UUID, userId uuid.UUID) ([]*contract.ScoredDocumentChunk, error) {
	f.gotLimit = limit
	f.gotDocumentId = documentId
	f.gotUserId = userId
	return f.results, f.err
}

type fakeUow struct {
	unitofwork.UnitOfWork
	chunkRepo contract.DocumentChunkRepository
}

func (f *fakeUow) DocumentChunkRepository() contract.DocumentChunkRepository {
	return f.chunkRepo
}

type fakeUowFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestRetriever(embedder embedding.EmbeddingProvider, repo contract.DocumentChunkRepository) *PgVectorRetriever {
	return NewPgVectorRetriever(
		&fakeUowFactory{uow: &fakeUow{chunkRepo: repo}},
		embedder,
		noopLogger{},
	)
}

func TestSearchMapsScoredChunksToPassages(t *testing.T) {
	repo := &fakeChunkRepo{
		results: []*contract.ScoredDocumentChunk{
			{
				Chunk:      &entity.DocumentChunk{Content: "Mitochondria produce ATP.", PageNumber: 42, Section: "Energy"},
				Similarity: 0.91,
			},
			{
				Chunk:      &entity.DocumentChunk{Content: "Ribosomes build proteins.", PageNumber: 43},
				Similarity: 0.77,
			},
		},
	}
	r := newTestRetriever(&fakeEmbedder{}, repo)

	documentId, userId := uuid.New(), uuid.New()
	passages, err := r.Search(context.Background(), "what makes energy?", documentId, userId, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(passages) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(passages))
	}
	if passages[0].Content != "Mitochondria produce ATP." || passages[0].PageNumber != 42 || passages[0].Section != "Energy" {
		t.Errorf("unexpected first passage: %+v", passages[0])
	}
	if passages[0].Similarity == nil || *passages[0].Similarity != 0.91 {
		t.Errorf("similarity not carried over: %+v", passages[0].Similarity)
	}

	if repo.gotLimit != 5 {
		t.Errorf("limit = %d, want 5", repo.gotLimit)
	}
	if repo.gotDocumentId != documentId || repo.gotUserId != userId {
		t.Errorf("document/user scoping not forwarded")
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	r := newTestRetriever(&fakeEmbedder{}, &fakeChunkRepo{})

	passages, err := r.Search(context.Background(), "unrelated question", uuid.New(), uuid.New(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(passages) != 0 {
		t.Errorf("expected no passages, got %d", len(passages))
	}
}

func TestSearchCachesIdenticalQueries(t *testing.T) {
	embedder := &fakeEmbedder{}
	r := newTestRetriever(embedder, &fakeChunkRepo{
		results: []*contract.ScoredDocumentChunk{
			{Chunk: &entity.DocumentChunk{Content: "cached"}, Similarity: 0.5},
		},
	})

	documentId, userId := uuid.New(), uuid.New()
	if _, err := r.Search(context.Background(), "same question", documentId, userId, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Search(context.Background(), "same question", documentId, userId, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if embedder.calls != 1 {
		t.Errorf("embedder called %d times, want 1 (second call should hit cache)", embedder.calls)
	}
}

func TestSearchWrapsEmbeddingFailure(t *testing.T) {
	cause := errors.New("embedding api down")
	r := newTestRetriever(&fakeEmbedder{err: cause}, &fakeChunkRepo{})

	_, err := r.Search(context.Background(), "q", uuid.New(), uuid.New(), 5)

	var retErr *RetrievalError
	if !errors.As(err, &retErr) {
		t.Fatalf("expected *RetrievalError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause not wrapped")
	}
}

func TestSearchWrapsVectorSearchFailure(t *testing.T) {
	r := newTestRetriever(&fakeEmbedder{}, &fakeChunkRepo{err: errors.New("connection reset")})

	_, err := r.Search(context.Background(), "q", uuid.New(), uuid.New(), 5)

	var retErr *RetrievalError
	if !errors.As(err, &retErr) {
		t.Fatalf("expected *RetrievalError, got %v", err)
	}
}
