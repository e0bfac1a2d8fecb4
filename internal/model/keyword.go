package model

// Category classifies a keyword into one of the legal vocabulary groups
type Category string

const (
	CategoryContractTerms  Category = "contract_terms"
	CategoryParties        Category = "parties"
	CategoryLegalActions   Category = "legal_actions"
	CategoryFinancialTerms Category = "financial_terms"
	CategoryTemporalTerms  Category = "temporal_terms"
	CategoryPropertyTerms  Category = "property_terms"
	CategoryGeneral        Category = "general" // Token not found in any vocabulary list
)

// Weight returns the score multiplier applied to a keyword's frequency
func (c Category) Weight() int {
	if c == CategoryGeneral {
		return 1
	}
	return 2
}

// Keyword is a scored term extracted from a document
type Keyword struct {
	Term      string   `json:"term" yaml:"term"`           // Lowercase token
	Frequency int      `json:"frequency" yaml:"frequency"` // Occurrences in the document
	Category  Category `json:"category" yaml:"category"`
	Score     int      `json:"score" yaml:"score"` // Frequency * category weight
}

// NamedEntity is an entity reported by an external recognizer
type NamedEntity struct {
	Text       string  `json:"text" yaml:"text"`
	Label      string  `json:"label" yaml:"label"`           // PERSON, ORG, DATE, MONEY, ...
	Confidence float64 `json:"confidence" yaml:"confidence"` // In [0, 1]
}

// EntitySource records where the named entities of a result came from
type EntitySource string

const (
	EntitySourceCapability EntitySource = "capability" // Recognizer answered
	EntitySourceDisabled   EntitySource = "disabled"   // No recognizer configured
	EntitySourceFallback   EntitySource = "fallback"   // Recognizer failed, entities left empty
)

// KeywordStatistics summarizes an extraction run
type KeywordStatistics struct {
	TotalWords           int              `json:"total_words" yaml:"total_words"`
	UniqueKeywords       int              `json:"unique_keywords" yaml:"unique_keywords"`
	TotalPhrases         int              `json:"total_phrases" yaml:"total_phrases"`
	TotalEntities        int              `json:"total_entities" yaml:"total_entities"`
	CategoryDistribution map[Category]int `json:"category_distribution" yaml:"category_distribution"`
}

// KeywordExtractionResult is the output of a full keyword extraction
type KeywordExtractionResult struct {
	Keywords      []Keyword         `json:"keywords" yaml:"keywords"`
	KeyPhrases    []string          `json:"key_phrases" yaml:"key_phrases"`
	NamedEntities []NamedEntity     `json:"named_entities" yaml:"named_entities"`
	Statistics    KeywordStatistics `json:"statistics" yaml:"statistics"`
	EntitySource  EntitySource      `json:"entity_source" yaml:"entity_source"`
	Warnings      []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
