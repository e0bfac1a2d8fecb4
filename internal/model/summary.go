package model

// SummaryType selects the summarization strategy
type SummaryType string

const (
	SummaryExtractive  SummaryType = "extractive"
	SummaryAbstractive SummaryType = "abstractive"
)

// ParseSummaryType validates a summary type name
func ParseSummaryType(s string) (SummaryType, error) {
	switch t := SummaryType(s); t {
	case SummaryExtractive, SummaryAbstractive:
		return t, nil
	default:
		return "", &ConfigError{Field: "type", Reason: "must be extractive or abstractive (got " + s + ")"}
	}
}

// SummaryLength is a named length tier
type SummaryLength string

const (
	LengthShort  SummaryLength = "short"
	LengthMedium SummaryLength = "medium"
	LengthLong   SummaryLength = "long"
)

// Tier is the concrete budget behind a SummaryLength
type Tier struct {
	Sentences int // Target sentence count for extractive summaries
	Words     int // Word budget for abstractive summaries
}

// ParseSummaryLength validates a length name
func ParseSummaryLength(s string) (SummaryLength, error) {
	switch l := SummaryLength(s); l {
	case LengthShort, LengthMedium, LengthLong:
		return l, nil
	default:
		return "", &ConfigError{Field: "length", Reason: "must be short, medium or long (got " + s + ")"}
	}
}

// Tier returns the sentence and word budget for the length
func (l SummaryLength) Tier() Tier {
	switch l {
	case LengthShort:
		return Tier{Sentences: 3, Words: 80}
	case LengthLong:
		return Tier{Sentences: 8, Words: 250}
	default:
		return Tier{Sentences: 5, Words: 150}
	}
}

// SummarySource records which path produced a summary
type SummarySource string

const (
	SourceExtractive         SummarySource = "extractive"
	SourceAbstractive        SummarySource = "abstractive"
	SourceExtractiveFallback SummarySource = "extractive_fallback" // Abstractive requested but unavailable
)

// SentenceScore is the salience score of one sentence
type SentenceScore struct {
	Sentence string `json:"sentence"`
	Score    int    `json:"score"`
	Position int    `json:"position"` // Index among surviving sentences
}

// SummaryResult is the output of a summarization run
type SummaryResult struct {
	Summary          string        `json:"summary" yaml:"summary"`
	SummaryType      SummaryType   `json:"summary_type" yaml:"summary_type"`
	Length           SummaryLength `json:"length" yaml:"length"`
	OriginalWords    int           `json:"original_words" yaml:"original_words"`
	SummaryWords     int           `json:"summary_words" yaml:"summary_words"`
	CompressionRatio float64       `json:"compression_ratio" yaml:"compression_ratio"` // Percentage of words removed
	Sentences        int           `json:"sentences" yaml:"sentences"`
	Source           SummarySource `json:"source" yaml:"source"`
	Warnings         []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
