// Package summarize builds extractive summaries by sentence salience and
// drives abstractive summarization through an external capability.
package summarize

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/lexscan/internal/lexicon"
	"github.com/ppiankov/lexscan/internal/model"
	"github.com/ppiankov/lexscan/internal/textproc"
)

// minSentenceLength drops headings and fragments (characters, exclusive)
const minSentenceLength = 20

const (
	triggerBoost = 2
	numberBoost  = 1
)

// Extractive selects the most salient sentences of a document
type Extractive struct {
	salience *lexicon.Salience
}

// NewExtractive creates an extractive summarizer over the salience tables
func NewExtractive(salience *lexicon.Salience) *Extractive {
	return &Extractive{salience: salience}
}

// Sentences returns the candidate sentences of text in document order
func (e *Extractive) Sentences(text string) []string {
	var out []string
	for _, s := range textproc.SplitSentences(text) {
		if utf8.RuneCountInString(s) > minSentenceLength {
			out = append(out, s)
		}
	}
	return out
}

// ScoreSentences scores every candidate sentence
func (e *Extractive) ScoreSentences(text string) []model.SentenceScore {
	sentences := e.Sentences(text)
	scores := make([]model.SentenceScore, len(sentences))
	for i, s := range sentences {
		scores[i] = model.SentenceScore{
			Sentence: s,
			Score:    e.score(s),
			Position: i,
		}
	}
	return scores
}

func (e *Extractive) score(sentence string) int {
	score := 0
	for _, word := range strings.Fields(strings.ToLower(sentence)) {
		if e.salience.IsTerm(word) {
			score++
		}
	}
	if e.salience.HasTrigger(sentence) {
		score += triggerBoost
	}
	if e.salience.HasNumber(sentence) {
		score += numberBoost
	}
	return score
}

// Summarize returns the target most salient sentences in document order.
// Documents with no more than target sentences are returned whole, so text
// without any sentence long enough to score yields just ".".
func (e *Extractive) Summarize(text string, target int) string {
	scores := e.ScoreSentences(text)

	if len(scores) > target {
		sort.SliceStable(scores, func(i, j int) bool {
			return scores[i].Score > scores[j].Score
		})
		scores = scores[:max(target, 0)]
		sort.Slice(scores, func(i, j int) bool {
			return scores[i].Position < scores[j].Position
		})
	}

	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = s.Sentence
	}
	return strings.Join(parts, ". ") + "."
}
