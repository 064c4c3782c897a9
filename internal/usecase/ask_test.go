package usecase

import (
	"errors"
	"strings"
	"testing"

	"voicetutor/internal/adapter/speech"
	"voicetutor/internal/domain"
)

// fakeRetriever returns canned passages.
type fakeRetriever struct {
	passages []domain.RetrievedPassage
	err      error
	lastTopK int
}

func (f *fakeRetriever) Retrieve(query string, topK int, sourceFilter string) ([]domain.RetrievedPassage, error) {
	f.lastTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	return f.passages, nil
}

// fakeGenerator returns a canned answer.
type fakeGenerator struct {
	answer string
	err    error
}

func (f *fakeGenerator) Answer(question string, passages []domain.RetrievedPassage) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

// fakeSpeaker records what it was asked to speak.
type fakeSpeaker struct {
	result speech.Result
	err    error
	spoken string
}

func (f *fakeSpeaker) Speak(text string) (speech.Result, error) {
	f.spoken = text
	return f.result, f.err
}

func somePassages() []domain.RetrievedPassage {
	return []domain.RetrievedPassage{
		{Chunk: domain.Chunk{ID: 0, DocumentID: "bio.pdf", Page: 4, Text: "osmosis"}, Distance: 0.4},
	}
}

func TestAskHappyPath(t *testing.T) {
	retriever := &fakeRetriever{passages: somePassages()}
	uc := NewAskUseCase(retriever, &fakeGenerator{answer: "Water moves."}, nil, 5)

	answer, err := uc.Ask("What is osmosis?", "")
	if err != nil {
		t.Fatal(err)
	}
	if answer.Text != "Water moves." {
		t.Errorf("answer %q", answer.Text)
	}
	if len(answer.Passages) != 1 {
		t.Errorf("answer carries %d passages", len(answer.Passages))
	}
	if retriever.lastTopK != 5 {
		t.Errorf("retriever asked for top %d", retriever.lastTopK)
	}
	if answer.AudioPath != "" {
		t.Error("audio produced without a speaker")
	}
}

func TestAskEmptyQuestion(t *testing.T) {
	uc := NewAskUseCase(&fakeRetriever{}, &fakeGenerator{}, nil, 5)

	for _, q := range []string{"", "   "} {
		if _, err := uc.Ask(q, ""); !errors.Is(err, domain.ErrEmptyQuery) {
			t.Errorf("question %q: got %v, want ErrEmptyQuery", q, err)
		}
	}
}

func TestAskCollaboratorErrorsBecomeMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrUnauthorized, "API key"},
		{domain.ErrRateLimited, "rate limit"},
		{domain.ErrUnavailable, "could not be reached"},
	}

	for _, tt := range tests {
		uc := NewAskUseCase(&fakeRetriever{err: tt.err}, &fakeGenerator{}, nil, 5)

		answer, err := uc.Ask("q", "")
		if err != nil {
			t.Fatalf("%v surfaced as a hard error: %v", tt.err, err)
		}
		if !strings.Contains(answer.Text, tt.want) {
			t.Errorf("%v produced message %q, want mention of %q", tt.err, answer.Text, tt.want)
		}
	}
}

func TestAskGeneratorErrorKeepsPassages(t *testing.T) {
	uc := NewAskUseCase(
		&fakeRetriever{passages: somePassages()},
		&fakeGenerator{err: domain.ErrRateLimited},
		nil, 5,
	)

	answer, err := uc.Ask("q", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(answer.Passages) != 1 {
		t.Errorf("passages dropped on generator failure: %+v", answer)
	}
}

func TestAskUnknownErrorSurfaces(t *testing.T) {
	uc := NewAskUseCase(&fakeRetriever{err: errors.New("disk on fire")}, &fakeGenerator{}, nil, 5)

	if _, err := uc.Ask("q", ""); err == nil {
		t.Fatal("unclassified retriever error should surface")
	}
}

func TestAskSpeaksAnswer(t *testing.T) {
	speaker := &fakeSpeaker{result: speech.Result{AudioPath: "/audio/a.mp3", Engine: "openai"}}
	uc := NewAskUseCase(&fakeRetriever{passages: somePassages()}, &fakeGenerator{answer: "Water moves."}, speaker, 5)

	answer, err := uc.Ask("q", "")
	if err != nil {
		t.Fatal(err)
	}
	if answer.AudioPath != "/audio/a.mp3" || answer.Engine != "openai" {
		t.Errorf("audio metadata not carried: %+v", answer)
	}
	if speaker.spoken != "Water moves." {
		t.Errorf("speaker received %q", speaker.spoken)
	}
}

func TestAskSpeechFailureIsNotFatal(t *testing.T) {
	speaker := &fakeSpeaker{err: domain.ErrUnavailable}
	uc := NewAskUseCase(&fakeRetriever{passages: somePassages()}, &fakeGenerator{answer: "Water moves."}, speaker, 5)

	answer, err := uc.Ask("q", "")
	if err != nil {
		t.Fatal(err)
	}
	if answer.Text != "Water moves." {
		t.Errorf("answer lost on speech failure: %q", answer.Text)
	}
	if answer.AudioPath != "" {
		t.Error("audio path set despite failure")
	}
}
