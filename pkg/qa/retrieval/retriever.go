package retrieval

import (
	"context"
	"fmt"

	"textbook-qa-be/internal/entity"

	"github.com/google/uuid"
)

// Retriever finds the passages of a document most relevant to a question.
// An empty result is a valid outcome, not an error.
type Retriever interface {
	Search(ctx context.Context, query string, documentId uuid.UUID, userId uuid.UUID, topK int) ([]entity.Passage, error)
}

// RetrievalError wraps failures of the retrieval backend (embedding call,
// vector search). It distinguishes infrastructure failure from the legitimate
// empty-result case.
type RetrievalError struct {
	Stage string
	Cause error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed at %s: %v", e.Stage, e.Cause)
}

func (e *RetrievalError) Unwrap() error {
	return e.Cause
}
