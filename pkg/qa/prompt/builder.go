package prompt

import (
	"strings"

	"textbook-qa-be/internal/constant"
	"textbook-qa-be/pkg/llm"
)

// Builder assembles the two-message prompt for a textbook question: a system
// message carrying the tutor persona, the grounding rules and the retrieved
// context, and a user message carrying the question verbatim.
type Builder struct {
	question string
	context  string
}

func NewBuilder(question, context string) *Builder {
	return &Builder{
		question: question,
		context:  context,
	}
}

// Build returns the message sequence to send to the model.
func (b *Builder) Build() []llm.Message {
	var system strings.Builder

	b.writePersona(&system)
	b.writeGroundingRules(&system)
	b.writeContext(&system)

	return []llm.Message{
		{Role: "system", Content: system.String()},
		{Role: "user", Content: b.question},
	}
}

func (b *Builder) writePersona(prompt *strings.Builder) {
	prompt.WriteString("You are a patient tutor answering questions about a textbook.\n")
	prompt.WriteString("Explain clearly, at a level appropriate for a student studying the material.\n\n")
}

func (b *Builder) writeGroundingRules(prompt *strings.Builder) {
	prompt.WriteString("<rules>\n")
	prompt.WriteString("1. Answer ONLY from the textbook excerpts below. Do not use outside knowledge.\n")
	prompt.WriteString("2. If the excerpts do not contain the answer, reply exactly: \"")
	prompt.WriteString(constant.NoInformationFallback)
	prompt.WriteString("\"\n")
	prompt.WriteString("3. Do not invent page numbers, sections, or facts that are not in the excerpts.\n")
	prompt.WriteString("</rules>\n\n")
}

func (b *Builder) writeContext(prompt *strings.Builder) {
	prompt.WriteString("<textbook_excerpts>\n")
	prompt.WriteString(b.context)
	prompt.WriteString("\n</textbook_excerpts>")
}
