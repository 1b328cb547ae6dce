package entity

import (
	"time"

	"github.com/google/uuid"
)

// MessageMetadata is the structured blob attached to assistant messages:
// the passages the answer was grounded on plus the derived confidence.
type MessageMetadata struct {
	Sources    []Passage `json:"sources,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
}

type ChatMessage struct {
	Id            uuid.UUID
	Content       string
	Role          string
	ChatSessionId uuid.UUID
	Metadata      *MessageMetadata
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
