package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/lexscan/internal/lexicon"
	"github.com/ppiankov/lexscan/internal/model"
)

func newTestScorer() *KeywordScorer {
	return NewKeywordScorer(lexicon.NewTaxonomy(), lexicon.NewStopWords())
}

func TestKeywordScorer_BasicScoring(t *testing.T) {
	scorer := newTestScorer()

	keywords, err := scorer.Score("The party shall pay the party shall pay rent.", DefaultKeywordOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []model.Keyword{
		{Term: "party", Frequency: 2, Category: model.CategoryParties, Score: 4},
		{Term: "shall", Frequency: 2, Category: model.CategoryLegalActions, Score: 4},
		{Term: "pay", Frequency: 2, Category: model.CategoryGeneral, Score: 2},
	}

	if len(keywords) != len(want) {
		t.Fatalf("Expected %d keywords, got %d: %+v", len(want), len(keywords), keywords)
	}
	for i := range want {
		if keywords[i] != want[i] {
			t.Errorf("Keyword %d: expected %+v, got %+v", i, want[i], keywords[i])
		}
	}
	for _, kw := range keywords {
		if kw.Term == "rent" {
			t.Error("Expected 'rent' to be dropped below min frequency")
		}
	}
}

func TestKeywordScorer_Tokenize(t *testing.T) {
	scorer := newTestScorer()

	tokens := scorer.Tokenize("The TENANT, at its cost, may use Lot 42-B as a parking area2.")
	got := strings.Join(tokens, " ")
	want := "tenant its cost use lot parking"
	if got != want {
		t.Errorf("Tokenize() = %q, want %q", got, want)
	}
}

func TestKeywordScorer_TokenizeAccentedWords(t *testing.T) {
	scorer := newTestScorer()

	tokens := scorer.Tokenize("The café opened. Naïve résumé review of the lessee_name.")
	got := strings.Join(tokens, " ")
	want := "opened review"
	if got != want {
		t.Errorf("Tokenize() = %q, want %q", got, want)
	}

	keywords, err := scorer.Score("The café opened. The café closed. Naïve naïve résumé résumé.", DefaultKeywordOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(keywords) != 0 {
		t.Errorf("Expected no keywords from accented words, got %+v", keywords)
	}
}

func TestKeywordScorer_Invariants(t *testing.T) {
	scorer := newTestScorer()
	text := strings.Repeat("The landlord shall maintain the premises and the tenant shall pay rent on time. ", 3) +
		"Notice of termination shall be written. Termination requires notice. Payment of the deposit is due."

	for _, minFreq := range []int{1, 2, 3} {
		keywords, err := scorer.Score(text, KeywordOptions{MinFrequency: minFreq, MaxResults: 100})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		seen := make(map[string]bool)
		for i, kw := range keywords {
			if kw.Frequency < minFreq {
				t.Errorf("min %d: %q has frequency %d", minFreq, kw.Term, kw.Frequency)
			}
			if seen[kw.Term] {
				t.Errorf("min %d: duplicate term %q", minFreq, kw.Term)
			}
			seen[kw.Term] = true

			if kw.Score != kw.Frequency*kw.Category.Weight() {
				t.Errorf("min %d: %q score %d does not match frequency %d", minFreq, kw.Term, kw.Score, kw.Frequency)
			}
			if i > 0 && keywords[i-1].Score < kw.Score {
				t.Errorf("min %d: scores not descending at %d", minFreq, i)
			}
		}
	}
}

func TestKeywordScorer_MaxResults(t *testing.T) {
	scorer := newTestScorer()
	keywords, err := scorer.Score("alpha beta gamma delta alpha beta gamma delta", KeywordOptions{MinFrequency: 1, MaxResults: 2})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(keywords) != 2 {
		t.Fatalf("Expected 2 keywords, got %d", len(keywords))
	}
	// Equal scores keep first-encounter order
	if keywords[0].Term != "alpha" || keywords[1].Term != "beta" {
		t.Errorf("Unexpected order: %+v", keywords)
	}
}

func TestKeywordScorer_EmptyText(t *testing.T) {
	keywords, err := newTestScorer().Score("   ", DefaultKeywordOptions())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(keywords) != 0 {
		t.Errorf("Expected no keywords, got %d", len(keywords))
	}
}

func TestKeywordScorer_InvalidOptions(t *testing.T) {
	scorer := newTestScorer()
	for _, opts := range []KeywordOptions{
		{MinFrequency: 0, MaxResults: 10},
		{MinFrequency: 1, MaxResults: 0},
	} {
		if _, err := scorer.Score("text", opts); !errors.Is(err, model.ErrInvalidConfig) {
			t.Errorf("%+v: expected ErrInvalidConfig, got %v", opts, err)
		}
	}
}

func TestCategoryDistribution(t *testing.T) {
	dist := CategoryDistribution([]model.Keyword{
		{Term: "tenant", Category: model.CategoryParties},
		{Term: "landlord", Category: model.CategoryParties},
		{Term: "rent", Category: model.CategoryFinancialTerms},
	})
	if dist[model.CategoryParties] != 2 || dist[model.CategoryFinancialTerms] != 1 {
		t.Errorf("Unexpected distribution: %v", dist)
	}
}
