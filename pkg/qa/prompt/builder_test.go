package prompt

import (
	"strings"
	"testing"

	"textbook-qa-be/internal/constant"
)

func TestBuildReturnsSystemThenUser(t *testing.T) {
	messages := NewBuilder("What is osmosis?", "some context").Build()

	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", messages[0].Role)
	}
	if messages[1].Role != "user" {
		t.Errorf("second message role = %q, want user", messages[1].Role)
	}
}

func TestBuildUserMessageCarriesQuestionVerbatim(t *testing.T) {
	question := "Why does ice float on water?"
	messages := NewBuilder(question, "ctx").Build()

	if messages[1].Content != question {
		t.Errorf("user message = %q, want question verbatim", messages[1].Content)
	}
}

func TestBuildSystemMessageContents(t *testing.T) {
	contextText := "[Passage 1 | Page 4]\nWater expands when it freezes."
	messages := NewBuilder("q", contextText).Build()
	system := messages[0].Content

	if !strings.Contains(system, contextText) {
		t.Errorf("system message missing context: %q", system)
	}
	if !strings.Contains(system, constant.NoInformationFallback) {
		t.Errorf("system message missing fallback instruction: %q", system)
	}
	if !strings.Contains(system, "tutor") {
		t.Errorf("system message missing persona: %q", system)
	}
}
