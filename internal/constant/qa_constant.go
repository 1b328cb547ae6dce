package constant

// Chat message roles as stored in the database.
const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

const (
	// RetrievalTopK is the fixed number of candidate passages fetched per question.
	RetrievalTopK = 5

	// DefaultSimilarityPrior is used when a passage carries no similarity score.
	// It is a neutral prior, not a measured value. Both the confidence
	// calculation and source formatting MUST go through this constant so the
	// two paths cannot diverge.
	DefaultSimilarityPrior = 0.8

	// SessionTitleMaxLen bounds the session title derived from the first question.
	SessionTitleMaxLen = 50

	// SourceExcerptMaxLen bounds passage content in API responses. The full
	// content is still preserved in the persisted message metadata.
	SourceExcerptMaxLen = 200
)

// NoRelevantContent is the sentinel context returned when retrieval yields
// nothing. It is fed to the model as-is; the prompt instructs the model to
// answer with NoInformationFallback in that case.
const NoRelevantContent = "No relevant content was found in the textbook for this question."

// NoInformationFallback is the phrase the model is instructed to return when
// the supplied context does not contain the answer.
const NoInformationFallback = "I could not find information about this in the textbook."

// GenericProcessingError is the only failure message exposed to callers of
// the question endpoint. Internal causes are logged, never echoed.
const GenericProcessingError = "Sorry, we could not process your question right now. Please try again."
