package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "QUESTION_PROCESSED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewQuestionProcessedEvent is emitted after a question has been answered,
// regardless of whether history persistence succeeded.
func NewQuestionProcessedEvent(sessionId, userId, documentId string, confidence float64) Event {
	return BaseEvent{
		Type: "QUESTION_PROCESSED",
		Data: map[string]interface{}{
			"session_id":  sessionId,
			"user_id":     userId,
			"document_id": documentId,
			"confidence":  confidence,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentIngestedEvent is emitted when a document's chunks have been
// registered and queued for embedding.
func NewDocumentIngestedEvent(documentId, userId string, chunkCount int) Event {
	return BaseEvent{
		Type: "DOCUMENT_INGESTED",
		Data: map[string]interface{}{
			"document_id": documentId,
			"user_id":     userId,
			"chunk_count": chunkCount,
		},
		OccurredAt: time.Now(),
	}
}
