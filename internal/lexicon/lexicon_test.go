package lexicon

import (
	"testing"

	"github.com/ppiankov/lexscan/internal/model"
)

func TestTaxonomy_FirstListWins(t *testing.T) {
	tax := NewTaxonomy()

	tests := []struct {
		term string
		want model.Category
	}{
		{"term", model.CategoryContractTerms},     // also a temporal term
		{"covenant", model.CategoryContractTerms}, // also a legal action
		{"shall", model.CategoryLegalActions},
		{"tenant", model.CategoryParties},
		{"rent", model.CategoryFinancialTerms},
		{"notice", model.CategoryTemporalTerms},
		{"premises", model.CategoryPropertyTerms},
		{"pay", model.CategoryGeneral},
		{"Tenant", model.CategoryGeneral}, // lookup is exact on lowercase tokens
	}

	for _, tt := range tests {
		if got := tax.Categorize(tt.term); got != tt.want {
			t.Errorf("Categorize(%q) = %s, want %s", tt.term, got, tt.want)
		}
	}
}

func TestStopWords(t *testing.T) {
	sw := NewStopWords()
	for _, w := range []string{"the", "shall", "should", "them"} {
		if w == "shall" {
			if sw.Contains(w) {
				t.Errorf("Expected %q not to be a stop word", w)
			}
			continue
		}
		if !sw.Contains(w) {
			t.Errorf("Expected %q to be a stop word", w)
		}
	}
}

func TestPatternFamilies_MatchThroughTerminator(t *testing.T) {
	families := NewPatternFamilies()
	if len(families) != 6 {
		t.Fatalf("Expected 6 families, got %d", len(families))
	}

	text := "Nothing here. Subject to the terms herein, the tenant shall pay rent. Done"
	match := families[0].Pattern.FindString(text)
	if match != "Subject to the terms herein, the tenant shall pay rent." {
		t.Errorf("Unexpected match: %q", match)
	}

	// Triggers must sit on word boundaries
	if families[0].Pattern.MatchString("unsubject tothe rule.") {
		t.Error("Expected no match inside other words")
	}
}

func TestSalience(t *testing.T) {
	s := NewSalience()
	if !s.IsTerm("lease") || s.IsTerm("lease,") {
		t.Error("Expected exact term lookup")
	}
	if !s.HasTrigger("Under THIS AGREEMENT nothing changes") {
		t.Error("Expected case-insensitive trigger match")
	}
	if !s.HasNumber("within 30 days") || s.HasNumber("no digits here") {
		t.Error("Unexpected digit detection")
	}
}
