package report

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/lexscan/internal/model"
	"github.com/ppiankov/lexscan/internal/segment"
)

func TestWriteChunks(t *testing.T) {
	chunks := []model.Chunk{
		{ID: 1, Content: "first block", WordCount: 2, SentenceCount: 1, ParagraphCount: 1, StartIndex: 0, EndIndex: 1},
		{ID: 2, Content: "second block", WordCount: 2, SentenceCount: 1, ParagraphCount: 1, StartIndex: 1, EndIndex: 2},
	}
	opts := segment.Options{Method: model.ChunkByParagraphs, Size: 1, Overlap: 0}

	var buf bytes.Buffer
	if err := WriteChunks(&buf, "lease.txt", opts, chunks); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"TEXT CHUNKING REPORT\n" + strings.Repeat("=", 50),
		"Original Document: lease.txt",
		"Chunking Method: paragraphs",
		"Total Chunks: 2",
		"CHUNK 2\nWords: 2 | Sentences: 1\nParagraphs: 1\nRange: 1-2",
		"second block",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
}

func TestWriteChunks_NoParagraphLineForWords(t *testing.T) {
	var buf bytes.Buffer
	chunks := []model.Chunk{{ID: 1, Content: "a b", WordCount: 2, SentenceCount: 1, EndIndex: 2}}
	if err := WriteChunks(&buf, "x", segment.DefaultOptions(), chunks); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "Paragraphs:") {
		t.Errorf("Expected no paragraph line for word chunks:\n%s", buf.String())
	}
}

func keywordResult() *model.KeywordExtractionResult {
	return &model.KeywordExtractionResult{
		Keywords: []model.Keyword{
			{Term: "tenant", Frequency: 5, Category: model.CategoryParties, Score: 10},
			{Term: "cafe", Frequency: 2, Category: model.CategoryGeneral, Score: 2},
		},
		KeyPhrases:    []string{"The tenant shall pay rent"},
		NamedEntities: []model.NamedEntity{{Text: "Meridian Coffee", Label: "ORG", Confidence: 0.91234}},
		Statistics: model.KeywordStatistics{
			TotalWords:     120,
			UniqueKeywords: 2,
			TotalPhrases:   1,
			TotalEntities:  1,
			CategoryDistribution: map[model.Category]int{
				model.CategoryParties: 1,
				model.CategoryGeneral: 1,
			},
		},
		EntitySource: model.EntitySourceCapability,
	}
}

func TestWriteKeywords(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteKeywords(&buf, "lease.txt", keywordResult()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"KEYWORD EXTRACTION REPORT",
		"Total Words: 120",
		"  general: 1\n  parties: 1",
		"tenant (5 occurrences) - parties, score 10",
		"• The tenant shall pay rent",
		"Meridian Coffee (ORG) - 0.912",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "WARNINGS") {
		t.Error("Expected no warnings section")
	}
}

func TestWriteSummary(t *testing.T) {
	r := &model.SummaryResult{
		Summary:          "The tenant pays rent.",
		SummaryType:      model.SummaryAbstractive,
		Length:           model.LengthShort,
		OriginalWords:    200,
		SummaryWords:     4,
		CompressionRatio: 98,
		Sentences:        1,
		Source:           model.SourceExtractiveFallback,
		Warnings:         []string{"abstractive summarization unavailable: timeout"},
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, "lease.txt", r); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"LEGAL DOCUMENT SUMMARY",
		"Summary Type: abstractive",
		"Produced By: extractive_fallback",
		"Compression Ratio: 98.0%",
		"SUMMARY:\n" + strings.Repeat("-", 30) + "\nThe tenant pays rent.",
		"! abstractive summarization unavailable: timeout",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q\n%s", want, out)
		}
	}
}

func TestWriteAnalysis_EmptyDocument(t *testing.T) {
	a := &model.Analysis{
		ID:        "abc",
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Keywords:  &model.KeywordExtractionResult{Statistics: model.KeywordStatistics{CategoryDistribution: map[model.Category]int{}}},
	}

	var buf bytes.Buffer
	if err := WriteAnalysis(&buf, a); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Analyzed At: 2025-03-01 12:00:00 UTC") {
		t.Errorf("Unexpected timestamp line:\n%s", out)
	}
	if !strings.Contains(out, "(document is empty)") {
		t.Errorf("Expected empty document note:\n%s", out)
	}
}

func TestJSONPath(t *testing.T) {
	tests := map[string]string{
		"out/keywords.txt": "out/keywords.json",
		"summary":          "summary.json",
		"report.json":      "report.json",
	}
	for in, want := range tests {
		if got := JSONPath(in); got != want {
			t.Errorf("JSONPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "keywords.txt")
	r := keywordResult()

	jsonPath, err := Save(path, func(w io.Writer) error { return WriteKeywords(w, "lease.txt", r) }, r)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	text, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected text report: %v", err)
	}
	if !strings.HasPrefix(string(text), "KEYWORD EXTRACTION REPORT") {
		t.Errorf("Unexpected text report: %s", text)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("Expected JSON report: %v", err)
	}
	var decoded model.KeywordExtractionResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(decoded.Keywords) != 2 || decoded.Keywords[0].Term != "tenant" {
		t.Errorf("Unexpected decoded keywords: %+v", decoded.Keywords)
	}
}
