package factory

import (
	"fmt"

	"textbook-qa-be/pkg/llm"
	"textbook-qa-be/pkg/llm/huggingface"
	"textbook-qa-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, huggingFaceApiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(huggingFaceApiKey, "", modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
