package mapper

import (
	"testing"
	"time"

	"textbook-qa-be/internal/entity"
	"textbook-qa-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestChatMessageMetadataRoundTrip(t *testing.T) {
	m := NewChatMapper()
	similarity := 0.87

	msg := &entity.ChatMessage{
		Id:            uuid.New(),
		Content:       "answer",
		Role:          "assistant",
		ChatSessionId: uuid.New(),
		Metadata: &entity.MessageMetadata{
			Sources: []entity.Passage{
				{Content: "excerpt", PageNumber: 12, Section: "Genetics", Similarity: &similarity},
			},
			Confidence: 0.87,
		},
		CreatedAt: time.Now(),
	}

	back := m.ChatMessageToEntity(m.ChatMessageToModel(msg))

	require.NotNil(t, back.Metadata)
	assert.Equal(t, 0.87, back.Metadata.Confidence)
	require.Len(t, back.Metadata.Sources, 1)
	assert.Equal(t, "excerpt", back.Metadata.Sources[0].Content)
	assert.Equal(t, 12, back.Metadata.Sources[0].PageNumber)
	require.NotNil(t, back.Metadata.Sources[0].Similarity)
	assert.Equal(t, 0.87, *back.Metadata.Sources[0].Similarity)
}

func TestChatMessageWithoutMetadata(t *testing.T) {
	m := NewChatMapper()

	msg := &entity.ChatMessage{
		Id:      uuid.New(),
		Content: "question",
		Role:    "user",
	}

	mdl := m.ChatMessageToModel(msg)
	assert.Empty(t, mdl.Metadata)

	back := m.ChatMessageToEntity(mdl)
	assert.Nil(t, back.Metadata)
}

func TestChatMessageMalformedMetadataIsDropped(t *testing.T) {
	m := NewChatMapper()

	mdl := &model.ChatMessage{
		Id:       uuid.New(),
		Content:  "answer",
		Role:     "assistant",
		Metadata: datatypes.JSON([]byte("{not json")),
	}

	back := m.ChatMessageToEntity(mdl)
	require.NotNil(t, back)
	assert.Nil(t, back.Metadata, "malformed metadata must not poison the read")
	assert.Equal(t, "answer", back.Content)
}
