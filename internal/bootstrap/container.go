package bootstrap

import (
	"log"

	"textbook-qa-be/internal/config"
	"textbook-qa-be/internal/controller"
	"textbook-qa-be/internal/pkg/logger"
	"textbook-qa-be/internal/repository/unitofwork"
	"textbook-qa-be/internal/service"
	"textbook-qa-be/pkg/embedding"
	"textbook-qa-be/pkg/llm/factory"
	"textbook-qa-be/pkg/qa/answer"
	"textbook-qa-be/pkg/qa/retrieval"

	pktNats "textbook-qa-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QaController       controller.IQaController
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Infrastructure (Exposed for main.go to close)
	NatsPublisher *pktNats.Publisher

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceApiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Topics.EmbedChunks, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.EmbedChunks,
		uowFactory,
		embeddingProvider,
	)

	retriever := retrieval.NewPgVectorRetriever(uowFactory, embeddingProvider, sysLogger)
	generator := answer.NewGenerator(llmProvider)

	// A nil *Publisher inside a non-nil interface would dodge the service's
	// nil checks, so only pass it when the connection came up.
	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	qaService := service.NewQaService(uowFactory, retriever, generator, eventPublisher, sysLogger)
	documentService := service.NewDocumentService(uowFactory, publisherService, eventPublisher, sysLogger)

	// 6. Controllers
	return &Container{
		QaController:       controller.NewQaController(qaService),
		DocumentController: controller.NewDocumentController(documentService),
		ConsumerService:    consumerService,
		NatsPublisher:      natsPub,
		Logger:             sysLogger,
	}
}
