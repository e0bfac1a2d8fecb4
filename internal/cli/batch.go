package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lexscan/internal/report"
	"github.com/ppiankov/lexscan/internal/worker"
)

var listFile string

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch [file|url...]",
	Short: "Analyze many documents in parallel",
	Long: `Batch analyzes several documents concurrently:
- Read inputs from arguments and/or a list file (one per line)
- Analyze documents in parallel with a configurable worker count
- Write a text and JSON report per document to the output directory

Example:
  lexscan batch leases/*.txt
  lexscan batch --list inputs.txt --workers 8 --output-dir ./reports`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&listFile, "list", "", "file with one input path or URL per line")
	batchCmd.Flags().Int("workers", 4, "number of concurrent workers")
	batchCmd.Flags().String("output-dir", "./lexscan-reports", "output directory for reports")
	batchCmd.Flags().Bool("ner", false, "recognize named entities with the LLM provider")
	batchCmd.Flags().String("type", "extractive", "summary type (extractive, abstractive)")
	batchCmd.Flags().String("provider", "", "LLM provider (openai, anthropic, ollama, gemini)")
	batchCmd.Flags().String("model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputs := append([]string{}, args...)
	if listFile != "" {
		listed, err := worker.ReadPathsFromFile(listFile)
		if err != nil {
			return fmt.Errorf("read list: %w", err)
		}
		inputs = append(inputs, listed...)
	}
	if len(inputs) == 0 {
		return errors.New("no inputs: pass files or URLs, or --list")
	}

	ctx, a, done, err := setup(cmd)
	if err != nil {
		return err
	}
	defer done()

	outputDir := a.cfg.Output.Dir
	workers := a.cfg.Concurrency.Workers

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  lexscan Batch Analysis\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Documents:    %d\n", len(inputs))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	processor := worker.NewBatchProcessor(a.pipeline, workers)
	results := processor.ProcessFiles(ctx, inputs)

	names := newNameAllocator()
	failures := 0
	for _, result := range results {
		if result.Error != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		textPath := filepath.Join(outputDir, names.next(result.Path)+".txt")
		analysis := result.Analysis
		if _, err := report.Save(textPath, func(w io.Writer) error {
			return report.WriteAnalysis(w, analysis)
		}, analysis); err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (%d words, %d keywords) -> %s\n",
			result.Path, analysis.Document.Words, len(analysis.Keywords.Keywords), textPath)
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", len(results)-failures)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failures)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failures > 0 {
		return fmt.Errorf("%d of %d documents failed", failures, len(results))
	}
	return nil
}

// nameAllocator derives unique report names from input paths
type nameAllocator struct {
	used map[string]int
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{used: make(map[string]int)}
}

func (n *nameAllocator) next(input string) string {
	name := sanitizeFilename(input)
	n.used[name]++
	if count := n.used[name]; count > 1 {
		return fmt.Sprintf("%s-%d", name, count)
	}
	return name
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename turns a path or URL into a safe report base name
func sanitizeFilename(s string) string {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://")
	s = strings.TrimSuffix(s, "/")
	if i := strings.LastIndexAny(s, `/\`); i >= 0 && i < len(s)-1 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, filepath.Ext(s))
	s = filenameReplacer.Replace(s)

	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" || s == "." || s == ".." {
		s = "document"
	}
	return s
}
