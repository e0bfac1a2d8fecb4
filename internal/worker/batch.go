package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/lexscan/internal/model"
)

// Analyzer defines the interface for analyzing one document file
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Analysis, error)
}

// FileJob analyzes a single document file
type FileJob struct {
	Index    int // Position in the input list
	Path     string
	Analyzer Analyzer
}

// Execute executes the analysis job
func (j *FileJob) Execute(ctx context.Context) Result {
	analysis, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	return &FileResult{
		index:    j.Index,
		Path:     j.Path,
		Analysis: analysis,
		Error:    err,
	}
}

// FileResult represents the result of a file analysis job
type FileResult struct {
	index    int
	Path     string
	Analysis *model.Analysis
	Error    error
}

// GetError returns the error from the analysis
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many files concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessFiles analyzes every path and returns results in input order
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, path := range paths {
		job := &FileJob{
			Index:    i,
			Path:     path,
			Analyzer: b.analyzer,
		}
		if !pool.Submit(job) {
			break
		}
	}

	results := pool.Wait()

	fileResults := make([]*FileResult, 0, len(paths))
	done := make(map[int]bool, len(results))
	for _, result := range results {
		fr := result.(*FileResult)
		done[fr.index] = true
		fileResults = append(fileResults, fr)
	}

	// Jobs dropped by cancellation still get a result
	for i, path := range paths {
		if !done[i] {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("not processed")
			}
			fileResults = append(fileResults, &FileResult{index: i, Path: path, Error: err})
		}
	}

	sort.Slice(fileResults, func(i, j int) bool {
		return fileResults[i].index < fileResults[j].index
	})

	return fileResults
}

// ReadPathsFromFile reads document paths from a file (one per line).
// Blank lines and # comments are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
