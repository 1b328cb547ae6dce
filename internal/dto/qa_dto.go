package dto

import (
	"time"

	"github.com/google/uuid"
)

type AskQuestionRequest struct {
	Question   string     `json:"question" validate:"required"`
	DocumentId uuid.UUID  `json:"document_id" validate:"required"`
	SessionId  *uuid.UUID `json:"session_id,omitempty"`
}

// SourceDTO is the caller-facing view of a retrieved passage. Content is a
// bounded excerpt; the full text lives in the persisted message metadata.
type SourceDTO struct {
	Content    string  `json:"content"`
	PageNumber int     `json:"page_number"`
	Section    string  `json:"section,omitempty"`
	Confidence float64 `json:"confidence"`
}

type AskQuestionResponse struct {
	Answer    string      `json:"answer"`
	Sources   []SourceDTO `json:"sources"`
	SessionId uuid.UUID   `json:"session_id"`
}

type GetChatHistoryResponse struct {
	Id         uuid.UUID   `json:"id"`
	Role       string      `json:"role"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"created_at"`
	Sources    []SourceDTO `json:"sources,omitempty"`
	Confidence *float64    `json:"confidence,omitempty"`
}

type GetAllSessionsResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	DocumentId uuid.UUID  `json:"document_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// --- Custom Error Types ---

// ProcessingError is the caller-safe failure of the question pipeline.
// Message is the only detail that leaves the process; causes are logged.
type ProcessingError struct {
	Message string `json:"message"`
}

func (e *ProcessingError) Error() string {
	return e.Message
}

// NotFoundError signals that a requested resource does not exist or is not
// visible to the caller.
type NotFoundError struct {
	Message string `json:"message"`
}

func (e *NotFoundError) Error() string {
	return e.Message
}
