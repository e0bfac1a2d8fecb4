package summarize

import (
	"strings"
	"testing"

	"github.com/ppiankov/lexscan/internal/lexicon"
)

const leaseText = "The weather was pleasant in the morning. " +
	"The tenant shall pay rent under this agreement. " +
	"Birds were singing outside the window. " +
	"The landlord shall repair the premises within 30 days. " +
	"Nothing else happened during the afternoon."

func TestExtractive_ScoreSentences(t *testing.T) {
	e := NewExtractive(lexicon.NewSalience())
	scores := e.ScoreSentences(leaseText)

	expected := []int{0, 5, 0, 4, 0}
	if len(scores) != len(expected) {
		t.Fatalf("Expected %d sentences, got %d", len(expected), len(scores))
	}
	for i, s := range scores {
		if s.Score != expected[i] {
			t.Errorf("Sentence %d (%q): expected score %d, got %d", i, s.Sentence, expected[i], s.Score)
		}
		if s.Position != i {
			t.Errorf("Sentence %d: expected position %d, got %d", i, i, s.Position)
		}
	}
}

func TestExtractive_SelectsTopInDocumentOrder(t *testing.T) {
	e := NewExtractive(lexicon.NewSalience())

	got := e.Summarize(leaseText, 2)
	want := "The tenant shall pay rent under this agreement. The landlord shall repair the premises within 30 days."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestExtractive_TiesKeepEarliest(t *testing.T) {
	e := NewExtractive(lexicon.NewSalience())

	got := e.Summarize(leaseText, 3)
	if !strings.HasPrefix(got, "The weather was pleasant in the morning. The tenant") {
		t.Errorf("Expected earliest zero-score sentence to win the tie, got %q", got)
	}
	if strings.Contains(got, "Birds") {
		t.Errorf("Expected later tie to be dropped, got %q", got)
	}
}

func TestExtractive_ShortInputReturnedWhole(t *testing.T) {
	e := NewExtractive(lexicon.NewSalience())
	text := "The first sentence is long enough. The second sentence is long enough too. The third sentence closes the document."

	got := e.Summarize(text, 5)
	want := "The first sentence is long enough. The second sentence is long enough too. The third sentence closes the document."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	// Idempotent on its own output
	if again := e.Summarize(got, 5); again != got {
		t.Errorf("Expected idempotent result, got %q", again)
	}
}

func TestExtractive_DropsShortFragments(t *testing.T) {
	e := NewExtractive(lexicon.NewSalience())

	sentences := e.Sentences("Section 1. The parties agree to the following terms! Ok?")
	if len(sentences) != 1 || sentences[0] != "The parties agree to the following terms" {
		t.Errorf("Unexpected sentences: %q", sentences)
	}
}

func TestExtractive_Empty(t *testing.T) {
	e := NewExtractive(lexicon.NewSalience())

	if got := e.Summarize("", 3); got != "." {
		t.Errorf("Expected bare period, got %q", got)
	}
	if got := e.Summarize("Too short. Also short.", 3); got != "." {
		t.Errorf("Expected bare period when no sentence survives, got %q", got)
	}
}
