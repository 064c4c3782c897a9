package usecase

import (
	"errors"
	"fmt"
	"strings"

	"voicetutor/internal/adapter/speech"
	"voicetutor/internal/domain"
	"voicetutor/internal/logger"
	"voicetutor/internal/port"
)

// Speaker is the optional speech collaborator for spoken answers.
type Speaker interface {
	Speak(text string) (speech.Result, error)
}

// AskUseCase runs the query path: retrieve, generate, optionally speak.
// Collaborator failures are translated here into distinguishable
// user-facing messages; they never bubble as crashes and are never
// conflated with "not found in corpus".
type AskUseCase struct {
	retriever port.Retriever
	generator port.Generator
	speaker   Speaker // nil when speech is disabled
	topK      int
}

func NewAskUseCase(retriever port.Retriever, generator port.Generator, speaker Speaker, topK int) *AskUseCase {
	if topK <= 0 {
		topK = 5
	}
	return &AskUseCase{
		retriever: retriever,
		generator: generator,
		speaker:   speaker,
		topK:      topK,
	}
}

// Ask answers a question from the corpus. sourceFilter restricts
// retrieval to one document when non-empty.
func (u *AskUseCase) Ask(question, sourceFilter string) (*domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuery
	}

	passages, err := u.retriever.Retrieve(question, u.topK, sourceFilter)
	if err != nil {
		if msg, ok := collaboratorMessage(err); ok {
			return &domain.Answer{Question: question, Text: msg}, nil
		}
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	text, err := u.generator.Answer(question, passages)
	if err != nil {
		if msg, ok := collaboratorMessage(err); ok {
			return &domain.Answer{Question: question, Text: msg, Passages: passages}, nil
		}
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	answer := &domain.Answer{
		Question: question,
		Text:     text,
		Passages: passages,
	}

	if u.speaker != nil {
		audio, err := u.speaker.Speak(text)
		if err != nil {
			// A silent answer is still an answer.
			logger.Warn("speech synthesis failed: %v", err)
		} else {
			answer.AudioPath = audio.AudioPath
			answer.Engine = audio.Engine
			answer.Cached = audio.Cached
		}
	}

	return answer, nil
}

// collaboratorMessage maps typed collaborator errors to user-facing
// messages, keeping the failure classes distinguishable.
func collaboratorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "Error: the language model rejected the API credentials. Check the configured API key.", true
	case errors.Is(err, domain.ErrRateLimited):
		return "Error: the language model's rate limit was exceeded. Please try again shortly.", true
	case errors.Is(err, domain.ErrUnavailable):
		return "Error: the language model could not be reached. Please check your connection and try again.", true
	default:
		return "", false
	}
}
