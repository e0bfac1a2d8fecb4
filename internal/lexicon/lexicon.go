// Package lexicon holds the fixed vocabulary tables used by the analyzers.
//
// Every table is built once by its constructor and never mutated, so a single
// instance can be shared by any number of goroutines.
package lexicon

import (
	"regexp"
	"strings"

	"github.com/ppiankov/lexscan/internal/model"
)

// CategoryList is one named vocabulary list of the taxonomy
type CategoryList struct {
	Category model.Category
	Terms    []string
}

// categoryLists is ordered by priority: a term listed under several
// categories belongs to the first one.
var categoryLists = []CategoryList{
	{model.CategoryContractTerms, []string{
		"agreement", "contract", "covenant", "provision", "clause", "term",
		"condition", "stipulation", "arrangement", "understanding",
	}},
	{model.CategoryParties, []string{
		"party", "parties", "plaintiff", "defendant", "appellant", "appellee",
		"petitioner", "respondent", "landlord", "tenant", "lessor", "lessee",
		"grantor", "grantee", "buyer", "seller", "vendor", "purchaser", "client", "customer",
	}},
	{model.CategoryLegalActions, []string{
		"shall", "must", "may", "will", "should", "agree", "covenant", "warrant",
		"represent", "acknowledge", "consent", "waive", "release", "indemnify",
		"defend", "enforce", "terminate", "breach", "default", "violate", "comply", "perform",
	}},
	{model.CategoryFinancialTerms, []string{
		"payment", "fee", "cost", "expense", "price", "amount", "consideration",
		"compensation", "damages", "penalty", "interest", "rent", "deposit", "refund",
		"reimbursement", "liability", "obligation", "debt", "credit", "installment",
	}},
	{model.CategoryTemporalTerms, []string{
		"date", "time", "period", "term", "duration", "deadline", "expiration",
		"commencement", "termination", "renewal", "extension", "notice", "day",
		"week", "month", "year", "annual", "monthly", "quarterly", "immediate", "upon",
	}},
	{model.CategoryPropertyTerms, []string{
		"property", "premises", "land", "building", "structure", "real estate",
		"personal property", "asset", "title", "ownership", "possession", "use",
		"occupancy", "access", "easement", "right of way", "boundary", "lot", "parcel",
	}},
}

// Taxonomy maps terms to categories
type Taxonomy struct {
	index map[string]model.Category
}

// NewTaxonomy builds the legal taxonomy with an O(1) term index
func NewTaxonomy() *Taxonomy {
	t := &Taxonomy{
		index: make(map[string]model.Category),
	}
	for _, list := range categoryLists {
		for _, term := range list.Terms {
			if _, exists := t.index[term]; !exists {
				t.index[term] = list.Category
			}
		}
	}
	return t
}

// Categorize returns the category of a lowercase token, or general
func (t *Taxonomy) Categorize(token string) model.Category {
	if c, ok := t.index[token]; ok {
		return c
	}
	return model.CategoryGeneral
}

// StopWords is a read-only set of tokens dropped before counting
type StopWords struct {
	words map[string]struct{}
}

// NewStopWords returns the fixed English stop word set
func NewStopWords() *StopWords {
	list := []string{
		"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of",
		"with", "by", "is", "are", "was", "were", "be", "been", "being", "have",
		"has", "had", "do", "does", "did", "will", "would", "could", "should",
		"may", "might", "can", "this", "that", "these", "those", "i", "you", "he",
		"she", "it", "we", "they", "me", "him", "her", "us", "them",
	}
	s := &StopWords{words: make(map[string]struct{}, len(list))}
	for _, w := range list {
		s.words[w] = struct{}{}
	}
	return s
}

// Contains reports whether the lowercase token is a stop word
func (s *StopWords) Contains(token string) bool {
	_, ok := s.words[token]
	return ok
}

// PatternFamily is a named group of clause-opening trigger phrases
type PatternFamily struct {
	Name     string
	Triggers []string
	Pattern  *regexp.Regexp // Trigger through the next sentence terminator
}

// NewPatternFamilies compiles the six clause families in scan order
func NewPatternFamilies() []PatternFamily {
	defs := []struct {
		name     string
		triggers []string
	}{
		{"transition", []string{
			"subject to", "in accordance with", "pursuant to", "with respect to",
			"in the event of", "provided that", "notwithstanding", "for the purpose of",
		}},
		{"agreement", []string{
			"the parties agree", "it is agreed", "the tenant shall", "the landlord shall",
			"this agreement", "the term of", "in consideration of",
		}},
		{"obligation", []string{
			"shall be responsible for", "shall maintain", "shall provide", "shall pay",
			"shall deliver", "shall perform", "shall comply with",
		}},
		{"condition", []string{
			"if and only if", "unless and until", "in the event that", "on condition that",
			"provided however",
		}},
		{"termination", []string{
			"may be terminated", "shall terminate", "upon termination",
			"in case of termination", "termination shall",
		}},
		{"notice", []string{
			"written notice", "notice shall be", "upon receipt of notice", "notice is hereby given",
		}},
	}

	families := make([]PatternFamily, 0, len(defs))
	for _, d := range defs {
		families = append(families, PatternFamily{
			Name:     d.name,
			Triggers: d.triggers,
			Pattern:  compileTriggers(d.triggers),
		})
	}
	return families
}

func compileTriggers(triggers []string) *regexp.Regexp {
	quoted := make([]string, len(triggers))
	for i, t := range triggers {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b[^.!?]*[.!?]`)
}

// Salience holds the tables used to score sentences for extractive summaries
type Salience struct {
	terms    map[string]struct{}
	triggers *regexp.Regexp
	digits   *regexp.Regexp
}

// NewSalience returns the legal salience tables
func NewSalience() *Salience {
	terms := []string{
		"agreement", "contract", "party", "parties", "term", "condition",
		"obligation", "right", "liability", "breach", "termination", "payment",
		"consideration", "whereas", "therefore", "shall", "landlord", "tenant",
		"lease", "property", "premises",
	}
	s := &Salience{
		terms:    make(map[string]struct{}, len(terms)),
		triggers: regexp.MustCompile(`(?i)\b(this agreement|the parties|it is agreed|subject to)\b`),
		digits:   regexp.MustCompile(`\b\d+\b`),
	}
	for _, t := range terms {
		s.terms[t] = struct{}{}
	}
	return s
}

// IsTerm reports whether a lowercase word is a salience term
func (s *Salience) IsTerm(word string) bool {
	_, ok := s.terms[word]
	return ok
}

// HasTrigger reports whether the sentence contains a trigger phrase
func (s *Salience) HasTrigger(sentence string) bool {
	return s.triggers.MatchString(sentence)
}

// HasNumber reports whether the sentence contains a standalone digit run
func (s *Salience) HasNumber(sentence string) bool {
	return s.digits.MatchString(sentence)
}
