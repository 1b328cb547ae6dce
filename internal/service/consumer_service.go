package service

import (
	"context"
	"encoding/json"
	"log"

	"textbook-qa-be/internal/dto"
	"textbook-qa-be/internal/repository/specification"
	"textbook-qa-be/internal/repository/unitofwork"
	"textbook-qa-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService embeds document chunks off the request path. Questions
// against a document only see chunks this worker has finished.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedChunksMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed job: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Embedding chunks for DocumentId: %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chunks, err := uow.DocumentChunkRepository().FindAll(ctx, specification.ByDocumentID{DocumentID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to load chunks for document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}
	if len(chunks) == 0 {
		log.Printf("[WARN] No chunks found for document %s", payload.DocumentId)
		msg.Ack() // Document deleted? Ack.
		return
	}

	embedded := 0
	for _, chunk := range chunks {
		if len(chunk.EmbeddingValue) > 0 {
			continue // already processed, job was retried
		}

		res, err := cs.embeddingProvider.Generate(chunk.Content, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to embed chunk %d of document %s: %v", chunk.ChunkIndex, payload.DocumentId, err)
			msg.Nack() // Nack for retriable errors; done chunks are skipped on retry
			return
		}

		chunk.EmbeddingValue = res.Embedding.Values
		if err := uow.DocumentChunkRepository().Update(ctx, chunk); err != nil {
			log.Printf("[ERROR] Failed to store embedding for chunk %d of document %s: %v", chunk.ChunkIndex, payload.DocumentId, err)
			msg.Nack()
			return
		}
		embedded++
	}

	log.Printf("[SUCCESS] Document processed: %d chunks embedded for DocumentId: %s", embedded, payload.DocumentId)
	msg.Ack()
}
