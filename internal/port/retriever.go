package port

import "voicetutor/internal/domain"

// Retriever finds passages relevant to a question.
type Retriever interface {
	// Retrieve embeds the query and returns up to topK passages under the
	// relevance threshold, nearest first. sourceFilter restricts results
	// to one document when non-empty. An empty result means "not found in
	// corpus" and is not an error.
	Retrieve(query string, topK int, sourceFilter string) ([]domain.RetrievedPassage, error)
}
