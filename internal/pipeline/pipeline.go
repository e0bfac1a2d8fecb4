// Package pipeline composes segmentation, keyword extraction and
// summarization into the operations exposed by the CLI and HTTP API.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/lexscan/internal/capability"
	"github.com/ppiankov/lexscan/internal/extract"
	"github.com/ppiankov/lexscan/internal/lexicon"
	"github.com/ppiankov/lexscan/internal/logger"
	"github.com/ppiankov/lexscan/internal/metrics"
	"github.com/ppiankov/lexscan/internal/model"
	"github.com/ppiankov/lexscan/internal/segment"
	"github.com/ppiankov/lexscan/internal/summarize"
	"github.com/ppiankov/lexscan/internal/textproc"
	"github.com/ppiankov/lexscan/internal/worker"
)

const (
	// minEntityLength drops single letters and initials (characters, inclusive)
	minEntityLength = 2

	fetchTimeout = 30 * time.Second
)

// Deps are the optional external capabilities. Nil disables a capability.
type Deps struct {
	Recognizer capability.EntityRecognizer
	Summarizer capability.AbstractiveSummarizer
}

// Pipeline orchestrates the analysis stages
type Pipeline struct {
	scorer      *extract.KeywordScorer
	phrases     *extract.PhraseMatcher
	extractive  *summarize.Extractive
	abstractive *summarize.Abstractive // nil if no summarizer
	recognizer  capability.EntityRecognizer
	loader      *Loader
	defaults    AnalyzeOptions
	timeout     time.Duration
	workers     int
	logger      *zap.Logger
}

// New creates a pipeline with the given configuration.
// The lexicon tables are built once here and shared read-only.
func New(cfg *model.Config, deps Deps, log *zap.Logger) (*Pipeline, error) {
	defaults, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	p := &Pipeline{
		scorer:     extract.NewKeywordScorer(lexicon.NewTaxonomy(), lexicon.NewStopWords()),
		phrases:    extract.NewPhraseMatcher(lexicon.NewPatternFamilies()),
		extractive: summarize.NewExtractive(lexicon.NewSalience()),
		recognizer: deps.Recognizer,
		loader:     NewLoader(fetchTimeout, cfg.Server.MaxBodyBytes),
		defaults:   defaults,
		timeout:    cfg.Capabilities.Timeout,
		workers:    max(cfg.Concurrency.Workers, 1),
		logger:     log,
	}
	if deps.Summarizer != nil {
		p.abstractive = summarize.NewAbstractive(deps.Summarizer, p.workers)
	}
	return p, nil
}

// Defaults returns the options derived from configuration
func (p *Pipeline) Defaults() AnalyzeOptions {
	return p.defaults
}

// Loader returns the document loader
func (p *Pipeline) Loader() *Loader {
	return p.loader
}

// Chunk segments text into overlapping chunks
func (p *Pipeline) Chunk(text string, opts segment.Options) ([]model.Chunk, error) {
	chunks, err := segment.Segment(text, opts)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("chunk", "error").Inc()
		return nil, err
	}
	metrics.AnalysesTotal.WithLabelValues("chunk", "ok").Inc()
	if chunks == nil {
		chunks = []model.Chunk{}
	}
	return chunks, nil
}

// ExtractAll runs keyword scoring, phrase matching and, when configured,
// named-entity recognition.
func (p *Pipeline) ExtractAll(ctx context.Context, text string, opts ExtractOptions) (*model.KeywordExtractionResult, error) {
	if err := opts.Validate(); err != nil {
		metrics.AnalysesTotal.WithLabelValues("keywords", "error").Inc()
		return nil, err
	}

	cleaned := textproc.NormalizeForKeywords(text)

	keywords, err := p.scorer.Score(cleaned, opts.keywordOptions())
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("keywords", "error").Inc()
		return nil, fmt.Errorf("score keywords: %w", err)
	}
	if keywords == nil {
		keywords = []model.Keyword{}
	}

	phrases := p.phrases.Extract(cleaned, opts.MaxPhrases)
	if phrases == nil {
		phrases = []string{}
	}

	result := &model.KeywordExtractionResult{
		Keywords:   keywords,
		KeyPhrases: phrases,
	}

	var primary func(context.Context) ([]model.NamedEntity, error)
	if p.recognizer != nil {
		primary = func(ctx context.Context) ([]model.NamedEntity, error) {
			return p.recognizeAll(ctx, cleaned)
		}
	}
	outcome := capability.WithFallback(p.withLogger(ctx), capability.NER, p.timeout, primary,
		func() []model.NamedEntity { return []model.NamedEntity{} },
	)
	result.NamedEntities = outcome.Value
	switch {
	case !outcome.FellBack:
		result.EntitySource = model.EntitySourceCapability
	case outcome.Reason == capability.ReasonDisabled:
		result.EntitySource = model.EntitySourceDisabled
	default:
		result.EntitySource = model.EntitySourceFallback
		result.Warnings = append(result.Warnings, "named entity recognition unavailable: "+outcome.Cause.Error())
	}

	result.Statistics = model.KeywordStatistics{
		TotalWords:           textproc.CountWords(cleaned),
		UniqueKeywords:       len(keywords),
		TotalPhrases:         len(phrases),
		TotalEntities:        len(result.NamedEntities),
		CategoryDistribution: extract.CategoryDistribution(keywords),
	}

	metrics.AnalysesTotal.WithLabelValues("keywords", "ok").Inc()
	return result, nil
}

// recognizeAll runs the recognizer over capability-sized windows and merges
// the results, keeping the first entity for each lowercase text
func (p *Pipeline) recognizeAll(ctx context.Context, text string) ([]model.NamedEntity, error) {
	windows := textproc.Windows(text, capability.MaxNERWords)

	perWindow, err := worker.Map(ctx, p.workers, len(windows), func(ctx context.Context, i int) ([]model.NamedEntity, error) {
		return p.recognizer.RecognizeEntities(ctx, windows[i])
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	merged := []model.NamedEntity{}
	for _, entities := range perWindow {
		for _, e := range entities {
			if utf8.RuneCountInString(e.Text) <= minEntityLength {
				continue
			}
			key := strings.ToLower(e.Text)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, e)
		}
	}
	return merged, nil
}

// Summarize produces an extractive or abstractive summary. Abstractive
// requests fall back to the extractive summary when the capability is
// missing or fails. Empty text yields model.ErrDivideByZero.
func (p *Pipeline) Summarize(ctx context.Context, text string, opts SummaryOptions) (*model.SummaryResult, error) {
	if err := opts.Validate(); err != nil {
		metrics.AnalysesTotal.WithLabelValues("summarize", "error").Inc()
		return nil, err
	}

	originalWords := textproc.CountWords(text)
	if originalWords == 0 {
		metrics.AnalysesTotal.WithLabelValues("summarize", "error").Inc()
		return nil, fmt.Errorf("compression ratio: %w", model.ErrDivideByZero)
	}

	cleaned := textproc.NormalizeForSummary(text)
	tier := opts.Length.Tier()
	extractive := func() string { return p.extractive.Summarize(cleaned, tier.Sentences) }

	result := &model.SummaryResult{
		SummaryType:   opts.Type,
		Length:        opts.Length,
		OriginalWords: originalWords,
	}

	if opts.Type == model.SummaryExtractive {
		result.Summary = extractive()
		result.Source = model.SourceExtractive
	} else {
		var primary func(context.Context) (string, error)
		if p.abstractive != nil {
			primary = func(ctx context.Context) (string, error) {
				return p.abstractive.Summarize(ctx, cleaned, tier.Words)
			}
		}
		outcome := capability.WithFallback(p.withLogger(ctx), capability.Abstractive, p.timeout, primary, extractive)
		result.Summary = outcome.Value
		result.Source = model.SourceAbstractive
		if outcome.FellBack {
			result.Source = model.SourceExtractiveFallback
			result.Warnings = append(result.Warnings, "abstractive summarization unavailable: "+outcome.Cause.Error())
		}
	}

	result.SummaryWords = textproc.CountWords(result.Summary)
	result.Sentences = textproc.CountSentences(result.Summary)
	ratio, err := CompressionRatio(result.OriginalWords, result.SummaryWords)
	if err != nil {
		return nil, err
	}
	result.CompressionRatio = ratio

	metrics.AnalysesTotal.WithLabelValues("summarize", "ok").Inc()
	return result, nil
}

// CompressionRatio is the percentage of words removed by summarization
func CompressionRatio(originalWords, summaryWords int) (float64, error) {
	if originalWords == 0 {
		return 0, fmt.Errorf("compression ratio: %w", model.ErrDivideByZero)
	}
	return float64(originalWords-summaryWords) / float64(originalWords) * 100, nil
}

// Analyze runs every stage over text. The summary is skipped for empty text.
func (p *Pipeline) Analyze(ctx context.Context, text string, opts AnalyzeOptions) (*model.Analysis, error) {
	if err := opts.Validate(); err != nil {
		metrics.AnalysesTotal.WithLabelValues("analyze", "error").Inc()
		return nil, err
	}

	ctx = p.withLogger(ctx)
	start := time.Now()
	analysis := &model.Analysis{
		ID:        uuid.NewString(),
		Source:    opts.Source,
		CreatedAt: start.UTC(),
		Document:  textproc.Stats(text),
	}

	chunks, err := p.Chunk(text, opts.Chunking)
	if err != nil {
		return nil, fmt.Errorf("chunk: %w", err)
	}
	analysis.Chunks = chunks

	keywords, err := p.ExtractAll(ctx, text, opts.Keywords)
	if err != nil {
		return nil, fmt.Errorf("extract keywords: %w", err)
	}
	analysis.Keywords = keywords

	if analysis.Document.Words > 0 {
		summary, err := p.Summarize(ctx, text, opts.Summary)
		if err != nil {
			return nil, fmt.Errorf("summarize: %w", err)
		}
		analysis.Summary = summary
	}

	metrics.AnalysesTotal.WithLabelValues("analyze", "ok").Inc()
	logger.FromContext(ctx).Debug("Analysis completed",
		zap.String("id", analysis.ID),
		zap.String("source", opts.Source),
		zap.Int("words", analysis.Document.Words),
		zap.Int("chunks", len(chunks)),
		zap.Int("keywords", len(keywords.Keywords)),
		zap.Duration("duration", time.Since(start)),
	)
	return analysis, nil
}

// AnalyzeFile loads a file or URL and analyzes it with the configured defaults
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Analysis, error) {
	doc, err := p.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	opts := p.defaults
	opts.Source = doc.Source
	return p.Analyze(ctx, doc.Text, opts)
}

// withLogger attaches the pipeline logger unless the caller already set one
func (p *Pipeline) withLogger(ctx context.Context) context.Context {
	return logger.ContextWithLogger(ctx, logger.FromContextOr(ctx, p.logger))
}
