package chunker

import (
	"fmt"
	"strings"

	"voicetutor/internal/port"
)

const judgePrompt = `Given these consecutive paragraphs from a textbook:

[Paragraph 1]
%s

[Paragraph 2]
%s

Are these paragraphs discussing the same topic and should they be merged
into one passage?

Answer ONLY with: YES or NO

Answer YES if paragraph 2 continues the explanation from paragraph 1 or
they form a coherent unit together. Answer NO if there is a clear topic
change or they are standalone concepts.`

// LLMJudge classifies paragraph pairs as merge / do-not-merge using a
// language model.
type LLMJudge struct {
	llm port.LLM
}

func NewLLMJudge(llm port.LLM) *LLMJudge {
	return &LLMJudge{llm: llm}
}

func (j *LLMJudge) ShouldMerge(first, second string) (bool, error) {
	answer, err := j.llm.Generate(fmt.Sprintf(judgePrompt, first, second))
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToUpper(answer), "YES"), nil
}
