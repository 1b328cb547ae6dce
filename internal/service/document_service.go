package service

import (
	"context"
	"encoding/json"
	"time"

	"textbook-qa-be/internal/dto"
	"textbook-qa-be/internal/entity"
	"textbook-qa-be/internal/pkg/logger"
	"textbook-qa-be/internal/repository/specification"
	"textbook-qa-be/internal/repository/unitofwork"
	"textbook-qa-be/pkg/events"
	"textbook-qa-be/pkg/utils"

	"github.com/google/uuid"
)

// Chunking parameters for page content. Overlap preserves context across
// chunk boundaries so sentences split mid-way remain searchable.
const (
	chunkSize    = 1000
	chunkOverlap = 100
)

type IDocumentService interface {
	Register(ctx context.Context, userId uuid.UUID, request *dto.RegisterDocumentRequest) (*dto.RegisterDocumentResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllDocumentsResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   EventPublisher
	logger           logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	logger logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           logger,
	}
}

// Register stores a document and its page chunks, then queues the chunks for
// embedding. Chunks are searchable only once the embedding worker has
// processed them.
func (s *documentService) Register(ctx context.Context, userId uuid.UUID, request *dto.RegisterDocumentRequest) (*dto.RegisterDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	document := &entity.Document{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     request.Title,
		Author:    request.Author,
		CreatedAt: now,
	}

	chunks := make([]*entity.DocumentChunk, 0)
	for _, page := range request.Pages {
		for i, piece := range utils.SplitText(page.Content, chunkSize, chunkOverlap) {
			chunks = append(chunks, &entity.DocumentChunk{
				Id:         uuid.New(),
				DocumentId: document.Id,
				Content:    piece,
				PageNumber: page.PageNumber,
				Section:    page.Section,
				ChunkIndex: i,
				CreatedAt:  now,
			})
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return nil, err
	}
	if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunks); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	msgPayload := dto.PublishEmbedChunksMessage{DocumentId: document.Id}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		s.logger.Error("document", "Failed to queue embedding job", map[string]interface{}{
			"document_id": document.Id.String(),
			"error":       err.Error(),
		})
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewDocumentIngestedEvent(document.Id.String(), userId.String(), len(chunks))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("document", "Failed to publish document ingested event", map[string]interface{}{
				"document_id": document.Id.String(),
				"error":       err.Error(),
			})
		}
	}

	return &dto.RegisterDocumentResponse{
		Id:         document.Id,
		ChunkCount: len(chunks),
	}, nil
}

func (s *documentService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllDocumentsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllDocumentsResponse, 0, len(documents))
	for _, document := range documents {
		response = append(response, &dto.GetAllDocumentsResponse{
			Id:        document.Id,
			Title:     document.Title,
			Author:    document.Author,
			CreatedAt: document.CreatedAt,
		})
	}

	return response, nil
}
