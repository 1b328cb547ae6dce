package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"textbook-qa-be/internal/entity"
	"textbook-qa-be/internal/repository/specification"
	"textbook-qa-be/internal/repository/unitofwork"
	"textbook-qa-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.ChatSessionRepository())

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	t.Run("Check Document Repository", func(t *testing.T) {
		count, err := uow.DocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Check Document Chunk Repository", func(t *testing.T) {
		count, err := uow.DocumentChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DocumentChunk count: %d", count)
	})

	t.Run("Session and message round trip", func(t *testing.T) {
		userId := uuid.New()

		document := &entity.Document{
			Id:        uuid.New(),
			UserId:    userId,
			Title:     "Integration Textbook " + uuid.New().String(),
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.DocumentRepository().Create(context.Background(), document))

		session := &entity.ChatSession{
			Id:         uuid.New(),
			UserId:     userId,
			DocumentId: document.Id,
			Title:      "What is a cell?",
			CreatedAt:  time.Now(),
		}
		require.NoError(t, uow.ChatSessionRepository().Create(context.Background(), session))

		similarity := 0.9
		message := &entity.ChatMessage{
			Id:            uuid.New(),
			Content:       "A cell is the basic unit of life.",
			Role:          "assistant",
			ChatSessionId: session.Id,
			Metadata: &entity.MessageMetadata{
				Sources:    []entity.Passage{{Content: "Cells are the basic unit of life.", PageNumber: 1, Similarity: &similarity}},
				Confidence: 0.9,
			},
			CreatedAt: time.Now(),
		}
		require.NoError(t, uow.ChatMessageRepository().Create(context.Background(), message))

		loaded, err := uow.ChatMessageRepository().FindAll(context.Background(),
			specification.ByChatSessionID{ChatSessionID: session.Id},
		)
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		require.NotNil(t, loaded[0].Metadata)
		assert.Equal(t, 0.9, loaded[0].Metadata.Confidence)

		// Cleanup
		assert.NoError(t, uow.ChatMessageRepository().DeleteByChatSessionId(context.Background(), session.Id))
		assert.NoError(t, uow.ChatSessionRepository().Delete(context.Background(), session.Id))
		assert.NoError(t, uow.DocumentRepository().Delete(context.Background(), document.Id))
	})
}
