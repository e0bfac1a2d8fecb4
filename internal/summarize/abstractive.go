package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/lexscan/internal/capability"
	"github.com/ppiankov/lexscan/internal/textproc"
	"github.com/ppiankov/lexscan/internal/worker"
)

// ErrNoSummarizableText is returned when every window is too short to send
var ErrNoSummarizableText = errors.New("no summarizable text")

const (
	minWindowLength    = 50 // characters, exclusive
	partialMinWords    = 30
	combinedMinWords   = 50
	defaultParallelism = 4
)

// Abstractive drives an AbstractiveSummarizer over a document that may be
// longer than a single capability span.
type Abstractive struct {
	summarizer capability.AbstractiveSummarizer
	workers    int
}

// NewAbstractive creates an abstractive driver; workers bounds concurrent
// window calls.
func NewAbstractive(summarizer capability.AbstractiveSummarizer, workers int) *Abstractive {
	if workers <= 0 {
		workers = defaultParallelism
	}
	return &Abstractive{summarizer: summarizer, workers: workers}
}

// Summarize summarizes text to at most maxWords words. The text is split into
// capability-sized windows which are summarized in parallel; when the joined
// partial summaries are still too long they are summarized once more.
func (a *Abstractive) Summarize(ctx context.Context, text string, maxWords int) (string, error) {
	var windows []string
	for _, w := range textproc.Windows(text, capability.MaxAbstractiveWords) {
		if len(strings.TrimSpace(w)) > minWindowLength {
			windows = append(windows, w)
		}
	}
	if len(windows) == 0 {
		return "", ErrNoSummarizableText
	}

	minWords := min(partialMinWords, maxWords)
	partials, err := worker.Map(ctx, a.workers, len(windows), func(ctx context.Context, i int) (string, error) {
		return a.summarizer.SummarizeSpan(ctx, windows[i], maxWords, minWords)
	})
	if err != nil {
		return "", fmt.Errorf("summarize windows: %w", err)
	}

	if len(partials) == 1 {
		return strings.TrimSpace(partials[0]), nil
	}

	combined := strings.Join(partials, " ")
	if textproc.CountWords(combined) <= maxWords {
		return strings.TrimSpace(combined), nil
	}

	// The combined text may itself exceed one span; only the head is sent.
	span := textproc.Windows(combined, capability.MaxAbstractiveWords)[0]
	final, err := a.summarizer.SummarizeSpan(ctx, span, maxWords, min(combinedMinWords, maxWords))
	if err != nil {
		return "", fmt.Errorf("summarize combined: %w", err)
	}
	return strings.TrimSpace(final), nil
}
