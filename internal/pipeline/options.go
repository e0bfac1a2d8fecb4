package pipeline

import (
	"errors"
	"fmt"

	"github.com/ppiankov/lexscan/internal/extract"
	"github.com/ppiankov/lexscan/internal/model"
	"github.com/ppiankov/lexscan/internal/segment"
)

// ExtractOptions bounds a keyword extraction run
type ExtractOptions struct {
	MinFrequency int
	MaxKeywords  int
	MaxPhrases   int
}

// DefaultExtractOptions returns min frequency 2, 50 keywords and 20 phrases
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{MinFrequency: 2, MaxKeywords: 50, MaxPhrases: 20}
}

// Validate checks the bounds
func (o ExtractOptions) Validate() error {
	if err := o.keywordOptions().Validate(); err != nil {
		return err
	}
	if o.MaxPhrases <= 0 {
		return &model.ConfigError{Field: "max_phrases", Reason: fmt.Sprintf("must be > 0 (got %d)", o.MaxPhrases)}
	}
	return nil
}

func (o ExtractOptions) keywordOptions() extract.KeywordOptions {
	return extract.KeywordOptions{MinFrequency: o.MinFrequency, MaxResults: o.MaxKeywords}
}

// SummaryOptions selects the summarization strategy and length tier
type SummaryOptions struct {
	Type   model.SummaryType
	Length model.SummaryLength
}

// DefaultSummaryOptions returns a medium extractive summary
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{Type: model.SummaryExtractive, Length: model.LengthMedium}
}

// Validate rejects unknown types and lengths
func (o SummaryOptions) Validate() error {
	if _, err := model.ParseSummaryType(string(o.Type)); err != nil {
		return err
	}
	if _, err := model.ParseSummaryLength(string(o.Length)); err != nil {
		return err
	}
	return nil
}

// AnalyzeOptions configures every stage of Analyze
type AnalyzeOptions struct {
	Source   string // Label stored on the result
	Chunking segment.Options
	Keywords ExtractOptions
	Summary  SummaryOptions
}

// Validate checks every stage and joins all problems found
func (o AnalyzeOptions) Validate() error {
	return errors.Join(o.Chunking.Validate(), o.Keywords.Validate(), o.Summary.Validate())
}

// OptionsFromConfig maps the configuration file sections onto AnalyzeOptions
func OptionsFromConfig(cfg *model.Config) (AnalyzeOptions, error) {
	method, err := model.ParseChunkMethod(cfg.Chunking.Method)
	if err != nil {
		return AnalyzeOptions{}, err
	}
	summaryType, err := model.ParseSummaryType(cfg.Summary.Type)
	if err != nil {
		return AnalyzeOptions{}, err
	}
	length, err := model.ParseSummaryLength(cfg.Summary.Length)
	if err != nil {
		return AnalyzeOptions{}, err
	}

	opts := AnalyzeOptions{
		Chunking: segment.Options{
			Method:  method,
			Size:    cfg.Chunking.Size,
			Overlap: cfg.Chunking.Overlap,
		},
		Keywords: ExtractOptions{
			MinFrequency: cfg.Keywords.MinFrequency,
			MaxKeywords:  cfg.Keywords.MaxKeywords,
			MaxPhrases:   cfg.Keywords.MaxPhrases,
		},
		Summary: SummaryOptions{Type: summaryType, Length: length},
	}
	return opts, opts.Validate()
}
