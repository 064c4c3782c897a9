package port

import "voicetutor/internal/domain"

// LLM represents a language model for text generation.
type LLM interface {
	// Generate generates text based on the prompt.
	Generate(prompt string) (string, error)

	// GenerateWithSystem generates text with a system prompt.
	GenerateWithSystem(systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}

// Generator produces a grounded answer from retrieved passages. It must
// answer only from the supplied passages and return the fixed sentinel
// when none were supplied or none contain the answer.
type Generator interface {
	Answer(question string, passages []domain.RetrievedPassage) (string, error)
}
