package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lexscan/internal/model"
	"github.com/ppiankov/lexscan/internal/pipeline"
	"github.com/ppiankov/lexscan/internal/report"
	"github.com/ppiankov/lexscan/internal/textproc"
)

const sampleSource = "sample-lease"

var (
	outPath    string
	jsonOutput bool
	useSample  bool
)

var chunkCmd = &cobra.Command{
	Use:   "chunk <file|url>",
	Short: "Split a document into overlapping chunks",
	Long: `Chunk splits a document into windows of words, sentences or
paragraphs. Consecutive windows share --overlap units.

Example:
  lexscan chunk lease.txt
  lexscan chunk lease.txt --method sentences --size 5 --overlap 1
  lexscan chunk lease.txt -o reports/lease-chunks.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChunk,
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords <file|url>",
	Short: "Extract legal keywords, key phrases and named entities",
	Long: `Keywords ranks terms by frequency weighted by legal category and
extracts clause-like key phrases. With --ner, named entities are
recognized by the configured LLM provider.

Example:
  lexscan keywords lease.txt
  lexscan keywords lease.txt --min-frequency 3 --max-phrases 10
  lexscan keywords lease.txt --ner --provider openai`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeywords,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file|url>",
	Short: "Summarize a document",
	Long: `Summarize selects the most salient sentences of a document and
keeps them in document order. --type abstractive asks the configured
LLM provider for a summary and falls back to the extractive one when
the provider is unavailable.

Example:
  lexscan summarize lease.txt --length short
  lexscan summarize lease.txt --type abstractive --provider anthropic`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|url>",
	Short: "Run chunking, keyword extraction and summarization",
	Long: `Analyze runs every stage over one document and writes a combined
report.

Example:
  lexscan analyze lease.txt
  lexscan analyze https://example.com/lease.html -o reports/lease.txt
  lexscan analyze --sample`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the built-in sample lease",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprint(cmd.OutOrStdout(), pipeline.SampleLease)
		return err
	},
}

func init() {
	for _, cmd := range []*cobra.Command{chunkCmd, keywordsCmd, summarizeCmd, analyzeCmd} {
		cmd.Flags().StringVarP(&outPath, "output", "o", "", "write a text report here and JSON next to it (a .json path writes JSON only)")
		cmd.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of the text report")
		cmd.Flags().BoolVar(&useSample, "sample", false, "use the built-in sample lease as input")
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(sampleCmd)

	for _, cmd := range []*cobra.Command{chunkCmd, analyzeCmd} {
		cmd.Flags().String("method", "words", "chunk unit (words, sentences, paragraphs)")
		cmd.Flags().Int("size", 200, "units per chunk")
		cmd.Flags().Int("overlap", 20, "units shared by consecutive chunks")
	}
	for _, cmd := range []*cobra.Command{keywordsCmd, analyzeCmd} {
		cmd.Flags().Int("min-frequency", 2, "minimum occurrences for a keyword")
		cmd.Flags().Int("max-keywords", 50, "maximum keywords to report")
		cmd.Flags().Int("max-phrases", 20, "maximum key phrases to report")
		cmd.Flags().Bool("ner", false, "recognize named entities with the LLM provider")
	}
	for _, cmd := range []*cobra.Command{summarizeCmd, analyzeCmd} {
		cmd.Flags().String("type", "extractive", "summary type (extractive, abstractive)")
		cmd.Flags().String("length", "medium", "summary length (short, medium, long)")
	}
	for _, cmd := range []*cobra.Command{keywordsCmd, summarizeCmd, analyzeCmd} {
		cmd.Flags().String("provider", "", "LLM provider (openai, anthropic, ollama, gemini)")
		cmd.Flags().String("model", "", "LLM model name")
	}
}

// commandContext is cancelled on interrupt
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// setup loads configuration and builds the app for cmd
func setup(cmd *cobra.Command) (context.Context, *app, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := commandContext()
	a, err := newApp(ctx, cfg)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return ctx, a, func() { a.Close(); cancel() }, nil
}

// loadInput reads the document named by args, or the sample lease
func loadInput(ctx context.Context, a *app, args []string) (*pipeline.Document, error) {
	if useSample {
		if len(args) > 0 {
			return nil, errors.New("--sample cannot be combined with an input file")
		}
		return &pipeline.Document{Text: pipeline.SampleLease, Source: sampleSource, ContentType: "text/plain"}, nil
	}
	if len(args) == 0 {
		return nil, errors.New("input file or URL required (or use --sample)")
	}
	return a.pipeline.Loader().Load(ctx, args[0])
}

// emit prints the report to stdout or saves it under outPath
func emit(cmd *cobra.Command, writeText func(io.Writer) error, v any) error {
	if outPath == "" {
		if jsonOutput {
			return report.WriteJSON(cmd.OutOrStdout(), v)
		}
		return writeText(cmd.OutOrStdout())
	}

	jsonPath, err := report.Save(outPath, writeText, v)
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	if jsonPath != outPath {
		fmt.Fprintf(os.Stderr, "✓ Report saved to %s\n", outPath)
	}
	fmt.Fprintf(os.Stderr, "✓ JSON saved to %s\n", jsonPath)
	return nil
}

func runChunk(cmd *cobra.Command, args []string) error {
	ctx, a, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	doc, err := loadInput(ctx, a, args)
	if err != nil {
		return err
	}

	opts := a.pipeline.Defaults().Chunking
	chunks, err := a.pipeline.Chunk(doc.Text, opts)
	if err != nil {
		return fmt.Errorf("chunk: %w", err)
	}

	totalWords := textproc.CountWords(doc.Text)
	fmt.Fprintf(os.Stderr, "✓ Created %d chunks (%s, size %d, overlap %d)\n", len(chunks), opts.Method, opts.Size, opts.Overlap)
	fmt.Fprintf(os.Stderr, "  Total words: %d\n", totalWords)
	if len(chunks) > 0 {
		sum := 0
		for _, c := range chunks {
			sum += c.WordCount
		}
		fmt.Fprintf(os.Stderr, "  Average words per chunk: %.1f\n", float64(sum)/float64(len(chunks)))
	}

	return emit(cmd, func(w io.Writer) error {
		return report.WriteChunks(w, doc.Source, opts, chunks)
	}, chunks)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	ctx, a, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	doc, err := loadInput(ctx, a, args)
	if err != nil {
		return err
	}

	result, err := a.pipeline.ExtractAll(ctx, doc.Text, a.pipeline.Defaults().Keywords)
	if err != nil {
		return fmt.Errorf("extract keywords: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Found %d keywords, %d key phrases, %d named entities (%s)\n",
		len(result.Keywords), len(result.KeyPhrases), len(result.NamedEntities), result.EntitySource)
	printWarnings(result.Warnings)

	return emit(cmd, func(w io.Writer) error {
		return report.WriteKeywords(w, doc.Source, result)
	}, result)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx, a, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	doc, err := loadInput(ctx, a, args)
	if err != nil {
		return err
	}
	if textproc.CountWords(doc.Text) == 0 {
		return fmt.Errorf("summarize %s: %w", doc.Source, model.ErrDivideByZero)
	}

	result, err := a.pipeline.Summarize(ctx, doc.Text, a.pipeline.Defaults().Summary)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Summarized %d words to %d (%.1f%% compression, %s)\n",
		result.OriginalWords, result.SummaryWords, result.CompressionRatio, result.Source)
	printWarnings(result.Warnings)

	return emit(cmd, func(w io.Writer) error {
		return report.WriteSummary(w, doc.Source, result)
	}, result)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, a, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	doc, err := loadInput(ctx, a, args)
	if err != nil {
		return err
	}
	if textproc.CountWords(doc.Text) == 0 {
		return fmt.Errorf("analyze %s: %w", doc.Source, model.ErrDivideByZero)
	}

	opts := a.pipeline.Defaults()
	opts.Source = doc.Source
	analysis, err := a.pipeline.Analyze(ctx, doc.Text, opts)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Analyzed %s: %d words, %d chunks, %d keywords\n",
		doc.Source, analysis.Document.Words, len(analysis.Chunks), len(analysis.Keywords.Keywords))
	printWarnings(analysis.Keywords.Warnings)
	if analysis.Summary != nil {
		printWarnings(analysis.Summary.Warnings)
	}

	return emit(cmd, func(w io.Writer) error {
		return report.WriteAnalysis(w, analysis)
	}, analysis)
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", w)
	}
}
