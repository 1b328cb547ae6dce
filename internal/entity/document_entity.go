package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	Author    string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// DocumentChunk is an indexed slice of a textbook page. EmbeddingValue is
// empty until the embedding worker has processed the chunk.
type DocumentChunk struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	Content        string
	PageNumber     int
	Section        string
	ChunkIndex     int
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
