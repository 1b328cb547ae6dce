package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"textbook-qa-be/pkg/llm"
)

type fakeLLM struct {
	response string
	err      error

	gotMessages []llm.Message
	gotOptions  llm.Options
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.gotMessages = history
	for _, o := range options {
		o(&f.gotOptions)
	}
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func TestGenerateReturnsCompletion(t *testing.T) {
	fake := &fakeLLM{response: "  Ice floats because it is less dense.  "}
	g := NewGenerator(fake)

	got, err := g.Generate(context.Background(), "Why does ice float?", "ctx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Ice floats because it is less dense." {
		t.Errorf("completion not trimmed: %q", got)
	}

	if len(fake.gotMessages) != 2 {
		t.Fatalf("expected 2 prompt messages, got %d", len(fake.gotMessages))
	}
	if !strings.Contains(fake.gotMessages[0].Content, "ctx") {
		t.Errorf("system message missing context")
	}
}

func TestGenerateUsesConservativeSamplingOptions(t *testing.T) {
	fake := &fakeLLM{response: "ok"}
	g := NewGenerator(fake)

	if _, err := g.Generate(context.Background(), "q", "c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fake.gotOptions.Temperature != generationTemperature {
		t.Errorf("temperature = %v, want %v", fake.gotOptions.Temperature, generationTemperature)
	}
	if fake.gotOptions.MaxTokens != generationMaxTokens {
		t.Errorf("max tokens = %v, want %v", fake.gotOptions.MaxTokens, generationMaxTokens)
	}
}

func TestGenerateWrapsProviderError(t *testing.T) {
	cause := errors.New("model overloaded")
	fake := &fakeLLM{err: cause}
	g := NewGenerator(fake)

	_, err := g.Generate(context.Background(), "q", "c")
	if err == nil {
		t.Fatal("expected error")
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause not wrapped")
	}
}

func TestGenerateRejectsEmptyCompletion(t *testing.T) {
	fake := &fakeLLM{response: "   \n  "}
	g := NewGenerator(fake)

	_, err := g.Generate(context.Background(), "q", "c")

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *GenerationError for empty completion, got %v", err)
	}
}
