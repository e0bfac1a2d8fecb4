package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/lexscan/internal/lexicon"
	"github.com/ppiankov/lexscan/internal/model"
)

// Word runs in the Unicode sense; only runs made entirely of a-z become tokens,
// so "café" is dropped rather than cut down to "caf"
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// KeywordOptions bounds a keyword scoring run
type KeywordOptions struct {
	MinFrequency int // Terms seen fewer times are dropped
	MaxResults   int
}

// DefaultKeywordOptions returns min frequency 2 and at most 50 keywords
func DefaultKeywordOptions() KeywordOptions {
	return KeywordOptions{MinFrequency: 2, MaxResults: 50}
}

// Validate checks the bounds
func (o KeywordOptions) Validate() error {
	if o.MinFrequency < 1 {
		return &model.ConfigError{Field: "min_frequency", Reason: fmt.Sprintf("must be >= 1 (got %d)", o.MinFrequency)}
	}
	if o.MaxResults <= 0 {
		return &model.ConfigError{Field: "max_keywords", Reason: fmt.Sprintf("must be > 0 (got %d)", o.MaxResults)}
	}
	return nil
}

// KeywordScorer ranks terms by frequency weighted by legal category
type KeywordScorer struct {
	taxonomy  *lexicon.Taxonomy
	stopWords *lexicon.StopWords
}

// NewKeywordScorer creates a scorer over the given tables
func NewKeywordScorer(taxonomy *lexicon.Taxonomy, stopWords *lexicon.StopWords) *KeywordScorer {
	return &KeywordScorer{
		taxonomy:  taxonomy,
		stopWords: stopWords,
	}
}

// Tokenize lowercases text and returns alphabetic tokens longer than two
// letters that are not stop words, in document order
func (s *KeywordScorer) Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) <= 2 || !isASCIILower(tok) || s.stopWords.Contains(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isASCIILower(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// Score returns the top keywords of text.
// Ties in score keep the order in which the terms first appeared.
func (s *KeywordScorer) Score(text string, opts KeywordOptions) ([]model.Keyword, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// 1. Count tokens, remembering first-encounter order
	counts := make(map[string]int)
	var order []string
	for _, tok := range s.Tokenize(text) {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	// 2. Keep frequent terms and weight them by category
	keywords := make([]model.Keyword, 0, len(order))
	for _, term := range order {
		freq := counts[term]
		if freq < opts.MinFrequency {
			continue
		}
		category := s.taxonomy.Categorize(term)
		keywords = append(keywords, model.Keyword{
			Term:      term,
			Frequency: freq,
			Category:  category,
			Score:     freq * category.Weight(),
		})
	}

	// 3. Rank
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Score > keywords[j].Score
	})

	if len(keywords) > opts.MaxResults {
		keywords = keywords[:opts.MaxResults]
	}

	return keywords, nil
}

// CategoryDistribution counts keywords per category
func CategoryDistribution(keywords []model.Keyword) map[model.Category]int {
	dist := make(map[model.Category]int)
	for _, kw := range keywords {
		dist[kw.Category]++
	}
	return dist
}
