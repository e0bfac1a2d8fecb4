// Package report renders analysis results as plain-text reports and
// structurally equivalent JSON documents.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/lexscan/internal/model"
	"github.com/ppiankov/lexscan/internal/segment"
)

var (
	rule    = strings.Repeat("=", 50)
	subrule = strings.Repeat("-", 30)
)

// WriteChunks writes the chunking report
func WriteChunks(w io.Writer, source string, opts segment.Options, chunks []model.Chunk) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "TEXT CHUNKING REPORT\n%s\n\n", rule)
	fmt.Fprintf(bw, "Original Document: %s\n", source)
	fmt.Fprintf(bw, "Chunking Method: %s\n", opts.Method)
	fmt.Fprintf(bw, "Chunk Size: %d\n", opts.Size)
	fmt.Fprintf(bw, "Overlap: %d\n", opts.Overlap)
	fmt.Fprintf(bw, "Total Chunks: %d\n\n", len(chunks))

	for _, c := range chunks {
		fmt.Fprintf(bw, "CHUNK %d\n", c.ID)
		fmt.Fprintf(bw, "Words: %d | Sentences: %d\n", c.WordCount, c.SentenceCount)
		if opts.Method == model.ChunkByParagraphs {
			fmt.Fprintf(bw, "Paragraphs: %d\n", c.ParagraphCount)
		}
		fmt.Fprintf(bw, "Range: %d-%d\n\n", c.StartIndex, c.EndIndex)
		fmt.Fprintf(bw, "%s\n\n%s\n\n", c.Content, rule)
	}

	return bw.Flush()
}

// WriteKeywords writes the keyword extraction report
func WriteKeywords(w io.Writer, source string, r *model.KeywordExtractionResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "KEYWORD EXTRACTION REPORT\n%s\n\n", rule)
	fmt.Fprintf(bw, "Document: %s\n\n", source)
	writeKeywordBody(bw, r)

	return bw.Flush()
}

func writeKeywordBody(bw *bufio.Writer, r *model.KeywordExtractionResult) {
	s := r.Statistics
	fmt.Fprintf(bw, "STATISTICS:\n")
	fmt.Fprintf(bw, "Total Words: %d\n", s.TotalWords)
	fmt.Fprintf(bw, "Unique Keywords: %d\n", s.UniqueKeywords)
	fmt.Fprintf(bw, "Key Phrases: %d\n", s.TotalPhrases)
	fmt.Fprintf(bw, "Named Entities: %d (%s)\n\n", s.TotalEntities, r.EntitySource)

	fmt.Fprintf(bw, "CATEGORY DISTRIBUTION:\n")
	for _, c := range sortedCategories(s.CategoryDistribution) {
		fmt.Fprintf(bw, "  %s: %d\n", c, s.CategoryDistribution[c])
	}
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "KEYWORDS:\n%s\n", subrule)
	for _, k := range r.Keywords {
		fmt.Fprintf(bw, "%s (%d occurrences) - %s, score %d\n", k.Term, k.Frequency, k.Category, k.Score)
	}
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "KEY PHRASES:\n%s\n", subrule)
	for _, p := range r.KeyPhrases {
		fmt.Fprintf(bw, "• %s\n", p)
	}
	fmt.Fprintln(bw)

	if len(r.NamedEntities) > 0 {
		fmt.Fprintf(bw, "NAMED ENTITIES:\n%s\n", subrule)
		for _, e := range r.NamedEntities {
			fmt.Fprintf(bw, "%s (%s) - %.3f\n", e.Text, e.Label, e.Confidence)
		}
		fmt.Fprintln(bw)
	}

	writeWarnings(bw, r.Warnings)
}

// WriteSummary writes the summary report
func WriteSummary(w io.Writer, source string, r *model.SummaryResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "LEGAL DOCUMENT SUMMARY\n%s\n\n", rule)
	fmt.Fprintf(bw, "Original Document: %s\n", source)
	writeSummaryBody(bw, r)

	return bw.Flush()
}

func writeSummaryBody(bw *bufio.Writer, r *model.SummaryResult) {
	fmt.Fprintf(bw, "Summary Type: %s\n", r.SummaryType)
	fmt.Fprintf(bw, "Produced By: %s\n", r.Source)
	fmt.Fprintf(bw, "Length: %s\n", r.Length)
	fmt.Fprintf(bw, "Original Words: %d\n", r.OriginalWords)
	fmt.Fprintf(bw, "Summary Words: %d\n", r.SummaryWords)
	fmt.Fprintf(bw, "Compression Ratio: %.1f%%\n", r.CompressionRatio)
	fmt.Fprintf(bw, "Sentences: %d\n\n", r.Sentences)
	fmt.Fprintf(bw, "SUMMARY:\n%s\n%s\n\n", subrule, r.Summary)
	writeWarnings(bw, r.Warnings)
}

// WriteAnalysis writes the combined report
func WriteAnalysis(w io.Writer, a *model.Analysis) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "LEGAL DOCUMENT ANALYSIS\n%s\n\n", rule)
	fmt.Fprintf(bw, "Analysis ID: %s\n", a.ID)
	if a.Source != "" {
		fmt.Fprintf(bw, "Document: %s\n", a.Source)
	}
	fmt.Fprintf(bw, "Analyzed At: %s\n\n", a.CreatedAt.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(bw, "DOCUMENT:\n")
	fmt.Fprintf(bw, "Words: %d\n", a.Document.Words)
	fmt.Fprintf(bw, "Characters: %d\n", a.Document.Characters)
	fmt.Fprintf(bw, "Sentences: %d\n", a.Document.Sentences)
	fmt.Fprintf(bw, "Paragraphs: %d\n", a.Document.Paragraphs)
	fmt.Fprintf(bw, "Chunks: %d\n\n%s\n\n", len(a.Chunks), rule)

	if a.Keywords != nil {
		writeKeywordBody(bw, a.Keywords)
		fmt.Fprintf(bw, "%s\n\n", rule)
	}

	if a.Summary != nil {
		writeSummaryBody(bw, a.Summary)
	} else {
		fmt.Fprintf(bw, "SUMMARY:\n%s\n(document is empty)\n", subrule)
	}

	return bw.Flush()
}

func writeWarnings(bw *bufio.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(bw, "WARNINGS:\n%s\n", subrule)
	for _, w := range warnings {
		fmt.Fprintf(bw, "! %s\n", w)
	}
	fmt.Fprintln(bw)
}

func sortedCategories(dist map[model.Category]int) []model.Category {
	cats := make([]model.Category, 0, len(dist))
	for c := range dist {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		if dist[cats[i]] != dist[cats[j]] {
			return dist[cats[i]] > dist[cats[j]]
		}
		return cats[i] < cats[j]
	})
	return cats
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// JSONPath returns the companion JSON path for a text report path
func JSONPath(textPath string) string {
	ext := filepath.Ext(textPath)
	if ext == ".json" {
		return textPath
	}
	return strings.TrimSuffix(textPath, ext) + ".json"
}

// Save writes the text report to path and the JSON document next to it.
// A .json path gets the JSON document only. It returns the JSON path.
func Save(path string, writeText func(io.Writer) error, v any) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}

	jsonPath := JSONPath(path)
	if jsonPath != path {
		if err := writeFile(path, writeText); err != nil {
			return "", err
		}
	}
	if err := writeFile(jsonPath, func(w io.Writer) error { return WriteJSON(w, v) }); err != nil {
		return "", err
	}
	return jsonPath, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
