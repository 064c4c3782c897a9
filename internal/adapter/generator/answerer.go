package generator

import (
	"fmt"
	"strings"

	"voicetutor/internal/domain"
	"voicetutor/internal/logger"
	"voicetutor/internal/port"
)

// NotFoundAnswer is the fixed sentinel returned when no grounded answer
// exists or no passages were supplied. Callers match it verbatim.
const NotFoundAnswer = "Sorry, this is not available in the uploaded textbooks."

const systemPrompt = `You are a voice tutor. You answer questions STRICTLY based on the provided context from uploaded textbooks.

RULES:
1. ONLY use information from the provided context to answer.
2. Do NOT use any outside knowledge.
3. If the answer is NOT found in the context, respond EXACTLY with:
   "` + NotFoundAnswer + `"
4. Always cite the source using page numbers when possible.
5. Keep answers clear, concise, and student-friendly.
6. Format the answer in a way that is easy to read aloud.`

const userPromptTemplate = `Context from the textbooks:
---
%s
---

Question: %s

Provide a clear, accurate answer based ONLY on the above context. Include page citations where applicable.`

// ContextAnswerer generates answers grounded in retrieved passages,
// annotating each with its source document and page so the model can cite
// them.
type ContextAnswerer struct {
	llm port.LLM
}

func NewContextAnswerer(llm port.LLM) *ContextAnswerer {
	return &ContextAnswerer{llm: llm}
}

// Answer produces a grounded answer. An empty passage list short-circuits
// to the sentinel without calling the model; the retriever passes an
// empty sequence rather than padding with irrelevant passages.
func (g *ContextAnswerer) Answer(question string, passages []domain.RetrievedPassage) (string, error) {
	if len(passages) == 0 {
		return NotFoundAnswer, nil
	}

	parts := make([]string, len(passages))
	for i, p := range passages {
		parts[i] = fmt.Sprintf("[%s - Page %d]\n%s", p.DocumentID, p.Page, p.Text)
	}
	context := strings.Join(parts, "\n\n")

	userPrompt := fmt.Sprintf(userPromptTemplate, context, question)

	answer, err := g.llm.GenerateWithSystem(systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = NotFoundAnswer
	}

	logger.Info("generated answer (%d chars) using model %q", len(answer), g.llm.ModelName())
	return answer, nil
}
