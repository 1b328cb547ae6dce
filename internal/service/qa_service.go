package service

import (
	"context"
	"strings"
	"time"

	"textbook-qa-be/internal/constant"
	"textbook-qa-be/internal/dto"
	"textbook-qa-be/internal/entity"
	"textbook-qa-be/internal/pkg/logger"
	"textbook-qa-be/internal/repository/specification"
	"textbook-qa-be/internal/repository/unitofwork"
	"textbook-qa-be/pkg/events"
	"textbook-qa-be/pkg/qa/confidence"
	"textbook-qa-be/pkg/qa/contextbuilder"
	"textbook-qa-be/pkg/qa/retrieval"

	"github.com/google/uuid"
)

type IQaService interface {
	ProcessQuestion(ctx context.Context, userId uuid.UUID, request *dto.AskQuestionRequest) (*dto.AskQuestionResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) []*dto.GetChatHistoryResponse
	GetAllSessions(ctx context.Context, userId uuid.UUID, documentId *uuid.UUID) []*dto.GetAllSessionsResponse
}

// AnswerGenerator produces a grounded answer from a question and its
// assembled context.
type AnswerGenerator interface {
	Generate(ctx context.Context, question, contextText string) (string, error)
}

// EventPublisher is the outbound event bus. A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type qaService struct {
	uowFactory     unitofwork.RepositoryFactory
	retriever      retrieval.Retriever
	generator      AnswerGenerator
	eventPublisher EventPublisher
	logger         logger.ILogger
}

func NewQaService(
	uowFactory unitofwork.RepositoryFactory,
	retriever retrieval.Retriever,
	generator AnswerGenerator,
	eventPublisher EventPublisher,
	logger logger.ILogger,
) IQaService {
	return &qaService{
		uowFactory:     uowFactory,
		retriever:      retriever,
		generator:      generator,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// ProcessQuestion runs the full pipeline: retrieve passages, assemble
// context, resolve the session, generate the answer, persist the exchange.
//
// Failure policy: retrieval, session creation and generation abort the
// request with a generic ProcessingError (causes are logged, never echoed).
// Message persistence is best-effort: a failed append is logged and the
// answer is still returned.
func (s *qaService) ProcessQuestion(ctx context.Context, userId uuid.UUID, request *dto.AskQuestionRequest) (*dto.AskQuestionResponse, error) {
	question := strings.TrimSpace(request.Question)

	passages, err := s.retriever.Search(ctx, question, request.DocumentId, userId, constant.RetrievalTopK)
	if err != nil {
		s.logger.Error("qa", "Retrieval failed", map[string]interface{}{
			"user_id":     userId.String(),
			"document_id": request.DocumentId.String(),
			"error":       err.Error(),
		})
		return nil, &dto.ProcessingError{Message: constant.GenericProcessingError}
	}

	contextText := contextbuilder.BuildContext(passages)
	answerConfidence := confidence.Estimate(passages)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	// A caller-supplied session id is trusted as-is: no existence check. A
	// dangling id surfaces as a failed (soft) message append below.
	var sessionId uuid.UUID
	if request.SessionId != nil {
		sessionId = *request.SessionId
	} else {
		session := &entity.ChatSession{
			Id:         uuid.New(),
			UserId:     userId,
			DocumentId: request.DocumentId,
			Title:      deriveSessionTitle(question),
			CreatedAt:  now,
		}
		if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
			s.logger.Error("qa", "Session creation failed", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
			return nil, &dto.ProcessingError{Message: constant.GenericProcessingError}
		}
		sessionId = session.Id
	}

	s.appendMessage(ctx, uow, &entity.ChatMessage{
		Id:            uuid.New(),
		Content:       question,
		Role:          constant.ChatMessageRoleUser,
		ChatSessionId: sessionId,
		CreatedAt:     now,
	})

	answerText, err := s.generator.Generate(ctx, question, contextText)
	if err != nil {
		s.logger.Error("qa", "Answer generation failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil, &dto.ProcessingError{Message: constant.GenericProcessingError}
	}

	s.appendMessage(ctx, uow, &entity.ChatMessage{
		Id:            uuid.New(),
		Content:       answerText,
		Role:          constant.ChatMessageRoleAssistant,
		ChatSessionId: sessionId,
		Metadata: &entity.MessageMetadata{
			Sources:    passages,
			Confidence: answerConfidence,
		},
		CreatedAt: now.Add(1 * time.Second),
	})

	s.touchSession(ctx, uow, userId, sessionId)

	if s.eventPublisher != nil {
		evt := events.NewQuestionProcessedEvent(sessionId.String(), userId.String(), request.DocumentId.String(), answerConfidence)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("qa", "Failed to publish question processed event", map[string]interface{}{
				"session_id": sessionId.String(),
				"error":      err.Error(),
			})
		}
	}

	return &dto.AskQuestionResponse{
		Answer:    answerText,
		Sources:   buildSourceDTOs(passages),
		SessionId: sessionId,
	}, nil
}

// GetChatHistory returns a session's messages in chronological order. Read
// failures and foreign sessions degrade to an empty slice, never an error.
func (s *qaService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) []*dto.GetChatHistoryResponse {
	response := make([]*dto.GetChatHistoryResponse, 0)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		s.logger.Error("qa", "Failed to load session for history", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return response
	}
	if session == nil {
		return response
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		s.logger.Error("qa", "Failed to load chat history", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return response
	}

	for _, msg := range chatMessages {
		item := &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		}
		if msg.Metadata != nil {
			item.Sources = buildSourceDTOs(msg.Metadata.Sources)
			conf := msg.Metadata.Confidence
			item.Confidence = &conf
		}
		response = append(response, item)
	}

	return response
}

// GetAllSessions lists the caller's sessions, most recently active first,
// optionally scoped to one document. Read failures degrade to an empty slice.
func (s *qaService) GetAllSessions(ctx context.Context, userId uuid.UUID, documentId *uuid.UUID) []*dto.GetAllSessionsResponse {
	response := make([]*dto.GetAllSessionsResponse, 0)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if documentId != nil {
		specs = append(specs, specification.ByDocumentID{DocumentID: *documentId})
	}

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx, specs...)
	if err != nil {
		s.logger.Error("qa", "Failed to list sessions", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return response
	}

	for _, session := range chatSessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:         session.Id,
			Title:      session.Title,
			DocumentId: session.DocumentId,
			CreatedAt:  session.CreatedAt,
			UpdatedAt:  session.UpdatedAt,
		})
	}

	return response
}

// appendMessage persists one message; failures are logged and swallowed so
// history gaps never cost the caller their answer.
func (s *qaService) appendMessage(ctx context.Context, uow unitofwork.UnitOfWork, msg *entity.ChatMessage) bool {
	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		s.logger.Warn("qa", "Failed to persist chat message", map[string]interface{}{
			"session_id": msg.ChatSessionId.String(),
			"role":       msg.Role,
			"error":      err.Error(),
		})
		return false
	}
	return true
}

// touchSession bumps updated_at so session listings surface recent activity
// first. Best-effort: a miss (dangling session id) is only logged.
func (s *qaService) touchSession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, sessionId uuid.UUID) {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil || session == nil {
		s.logger.Warn("qa", "Could not refresh session activity", map[string]interface{}{
			"session_id": sessionId.String(),
		})
		return
	}

	now := time.Now()
	session.UpdatedAt = &now
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		s.logger.Warn("qa", "Failed to update session activity", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}
}

// deriveSessionTitle bounds the first question to a listing-friendly length.
func deriveSessionTitle(question string) string {
	runes := []rune(question)
	if len(runes) <= constant.SessionTitleMaxLen {
		return question
	}
	return string(runes[:constant.SessionTitleMaxLen]) + "..."
}

// buildSourceDTOs maps passages to their caller-facing form: excerpted
// content plus the per-passage similarity (or the neutral prior).
func buildSourceDTOs(passages []entity.Passage) []dto.SourceDTO {
	sources := make([]dto.SourceDTO, 0, len(passages))
	for _, passage := range passages {
		sources = append(sources, dto.SourceDTO{
			Content:    excerpt(passage.Content),
			PageNumber: passage.PageNumber,
			Section:    passage.Section,
			Confidence: passage.SimilarityOrDefault(),
		})
	}
	return sources
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= constant.SourceExcerptMaxLen {
		return content
	}
	return string(runes[:constant.SourceExcerptMaxLen]) + "..."
}
