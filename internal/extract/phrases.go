package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/lexscan/internal/lexicon"
)

const (
	minPhraseLength = 20
	maxPhraseLength = 200
)

var trailingTerminators = regexp.MustCompile(`[.!?]+$`)

// PhraseMatcher finds legal clauses that open with a known trigger phrase
type PhraseMatcher struct {
	families []lexicon.PatternFamily
}

// NewPhraseMatcher creates a matcher over the given pattern families
func NewPhraseMatcher(families []lexicon.PatternFamily) *PhraseMatcher {
	return &PhraseMatcher{families: families}
}

// Extract returns up to maxPhrases unique clauses in first-seen order.
// Families are scanned in order; a clause found by several families
// (or nested inside another) is kept once per distinct text.
func (m *PhraseMatcher) Extract(text string, maxPhrases int) []string {
	if maxPhrases <= 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	phrases := make([]string, 0, maxPhrases)

	for _, family := range m.families {
		for _, match := range family.Pattern.FindAllString(text, -1) {
			phrase := cleanPhrase(match)

			n := utf8.RuneCountInString(phrase)
			if n < minPhraseLength || n > maxPhraseLength {
				continue
			}
			if seen[phrase] {
				continue
			}

			seen[phrase] = true
			phrases = append(phrases, phrase)
			if len(phrases) == maxPhrases {
				return phrases
			}
		}
	}

	return phrases
}

// cleanPhrase trims whitespace and drops the sentence terminator
func cleanPhrase(match string) string {
	return trailingTerminators.ReplaceAllString(strings.TrimSpace(match), "")
}
