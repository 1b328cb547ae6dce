package answer

import (
	"context"
	"fmt"
	"strings"

	"textbook-qa-be/pkg/llm"
	"textbook-qa-be/pkg/qa/prompt"
)

// Generation parameters. Low temperature keeps the model close to the
// supplied excerpts instead of paraphrasing freely.
const (
	generationTemperature = 0.1
	generationMaxTokens   = 1200
)

// GenerationError wraps failures of the completion backend.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("answer generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Generator turns a question plus assembled context into a grounded answer.
type Generator struct {
	llmProvider llm.LLMProvider
}

func NewGenerator(llmProvider llm.LLMProvider) *Generator {
	return &Generator{
		llmProvider: llmProvider,
	}
}

func (g *Generator) Generate(ctx context.Context, question, contextText string) (string, error) {
	messages := prompt.NewBuilder(question, contextText).Build()

	completion, err := g.llmProvider.Chat(ctx, messages,
		llm.WithTemperature(generationTemperature),
		llm.WithMaxTokens(generationMaxTokens),
	)
	if err != nil {
		return "", &GenerationError{Cause: err}
	}

	completion = strings.TrimSpace(completion)
	if completion == "" {
		return "", &GenerationError{Cause: fmt.Errorf("model returned an empty completion")}
	}

	return completion, nil
}
