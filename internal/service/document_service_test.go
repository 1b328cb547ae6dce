package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"textbook-qa-be/internal/dto"
	"textbook-qa-be/internal/entity"
	"textbook-qa-be/internal/repository/contract"
	"textbook-qa-be/internal/repository/specification"
	"textbook-qa-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocumentRepo struct {
	contract.DocumentRepository

	created   []*entity.Document
	createErr error

	findAllFn func(specs ...specification.Specification) ([]*entity.Document, error)
}

func (f *fakeDocumentRepo) Create(ctx context.Context, document *entity.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, document)
	return nil
}

func (f *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	if f.findAllFn != nil {
		return f.findAllFn(specs...)
	}
	return nil, nil
}

type fakeDocChunkRepo struct {
	contract.DocumentChunkRepository

	bulkCreated []*entity.DocumentChunk
}

func (f *fakeDocChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	f.bulkCreated = append(f.bulkCreated, chunks...)
	return nil
}

type fakeDocUow struct {
	unitofwork.UnitOfWork
	documents *fakeDocumentRepo
	chunks    *fakeDocChunkRepo
}

func (f *fakeDocUow) Begin(ctx context.Context) error { return nil }
func (f *fakeDocUow) Commit() error                   { return nil }
func (f *fakeDocUow) Rollback() error                 { return nil }

func (f *fakeDocUow) DocumentRepository() contract.DocumentRepository           { return f.documents }
func (f *fakeDocUow) DocumentChunkRepository() contract.DocumentChunkRepository { return f.chunks }

type fakePublisherService struct {
	payloads [][]byte
	err      error
}

func (f *fakePublisherService) Publish(ctx context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

type documentFixture struct {
	service   IDocumentService
	documents *fakeDocumentRepo
	chunks    *fakeDocChunkRepo
	publisher *fakePublisherService
}

func newDocumentFixture() *documentFixture {
	f := &documentFixture{
		documents: &fakeDocumentRepo{},
		chunks:    &fakeDocChunkRepo{},
		publisher: &fakePublisherService{},
	}
	factory := &fakeUowFactory{uow: &fakeDocUow{documents: f.documents, chunks: f.chunks}}
	f.service = NewDocumentService(factory, f.publisher, nil, noopLogger{})
	return f
}

func TestRegisterStoresDocumentAndChunks(t *testing.T) {
	f := newDocumentFixture()
	userId := uuid.New()

	res, err := f.service.Register(context.Background(), userId, &dto.RegisterDocumentRequest{
		Title:  "Biology 101",
		Author: "J. Watson",
		Pages: []dto.DocumentPageDTO{
			{PageNumber: 1, Section: "Intro", Content: "Short page."},
			{PageNumber: 2, Content: strings.Repeat("b", 1500)},
		},
	})
	require.NoError(t, err)

	require.Len(t, f.documents.created, 1)
	assert.Equal(t, "Biology 101", f.documents.created[0].Title)
	assert.Equal(t, userId, f.documents.created[0].UserId)

	// Page 1 fits a single chunk, page 2 is split with overlap.
	require.Greater(t, len(f.chunks.bulkCreated), 2)
	assert.Equal(t, res.ChunkCount, len(f.chunks.bulkCreated))

	first := f.chunks.bulkCreated[0]
	assert.Equal(t, res.Id, first.DocumentId)
	assert.Equal(t, 1, first.PageNumber)
	assert.Equal(t, "Intro", first.Section)
	assert.Empty(t, first.EmbeddingValue, "embedding is the worker's job")
}

func TestRegisterQueuesEmbeddingJob(t *testing.T) {
	f := newDocumentFixture()

	res, err := f.service.Register(context.Background(), uuid.New(), &dto.RegisterDocumentRequest{
		Title: "Chemistry",
		Pages: []dto.DocumentPageDTO{{PageNumber: 1, Content: "Atoms bond."}},
	})
	require.NoError(t, err)

	require.Len(t, f.publisher.payloads, 1)
	var msg dto.PublishEmbedChunksMessage
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &msg))
	assert.Equal(t, res.Id, msg.DocumentId)
}

func TestRegisterFailsWhenQueueUnavailable(t *testing.T) {
	f := newDocumentFixture()
	f.publisher.err = errors.New("bus closed")

	_, err := f.service.Register(context.Background(), uuid.New(), &dto.RegisterDocumentRequest{
		Title: "Physics",
		Pages: []dto.DocumentPageDTO{{PageNumber: 1, Content: "Force equals mass times acceleration."}},
	})
	assert.Error(t, err)
}

func TestGetAllMapsDocuments(t *testing.T) {
	f := newDocumentFixture()
	f.documents.findAllFn = func(specs ...specification.Specification) ([]*entity.Document, error) {
		return []*entity.Document{
			{Id: uuid.New(), Title: "Biology 101", Author: "J. Watson"},
		}, nil
	}

	docs, err := f.service.GetAll(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Biology 101", docs[0].Title)
}
