package llm

import (
	"context"
	"fmt"
	"strings"
)

const summarySystemPrompt = "You summarize legal documents. Preserve parties, obligations, amounts and dates. " +
	"Do not add facts that are not in the text. Respond with the summary only."

// Summarizer implements capability.AbstractiveSummarizer over a Provider
type Summarizer struct {
	provider Provider
}

// NewSummarizer wraps provider
func NewSummarizer(provider Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

// SummarizeSpan asks the model for a summary between minWords and maxWords long
func (s *Summarizer) SummarizeSpan(ctx context.Context, text string, maxWords, minWords int) (string, error) {
	resp, err := s.provider.Complete(ctx, CompletionRequest{
		System:    summarySystemPrompt,
		Prompt:    BuildSummaryPrompt(text, maxWords, minWords),
		MaxTokens: tokenBudget(maxWords),
	})
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(resp.Text)
	if summary == "" {
		return "", fmt.Errorf("%s returned an empty summary", s.provider.Name())
	}
	return summary, nil
}

// BuildSummaryPrompt constructs the prompt for one span
func BuildSummaryPrompt(text string, maxWords, minWords int) string {
	return fmt.Sprintf(
		"Summarize the following legal text in plain prose of %d to %d words.\n\nText:\n%s",
		minWords, maxWords, text,
	)
}

// tokenBudget allows roughly two tokens per requested word plus headroom
func tokenBudget(words int) int {
	return words*2 + 64
}
