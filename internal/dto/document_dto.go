package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentPageDTO struct {
	PageNumber int    `json:"page_number" validate:"min=0"`
	Section    string `json:"section,omitempty"`
	Content    string `json:"content" validate:"required"`
}

type RegisterDocumentRequest struct {
	Title  string            `json:"title" validate:"required"`
	Author string            `json:"author,omitempty"`
	Pages  []DocumentPageDTO `json:"pages" validate:"required,min=1,dive"`
}

type RegisterDocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	ChunkCount int       `json:"chunk_count"`
}

type GetAllDocumentsResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishEmbedChunksMessage is the payload queued for the embedding consumer.
type PublishEmbedChunksMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
