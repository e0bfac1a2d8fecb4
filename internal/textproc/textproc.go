// Package textproc contains the text normalization and splitting helpers
// shared by the segmenter, the keyword analyzers and the summarizers.
package textproc

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/lexscan/internal/model"
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	sentenceBreak    = regexp.MustCompile(`[.!?]+`)
	paragraphBreak   = regexp.MustCompile(`\n\s*\n`)
	boilerplateUpper = regexp.MustCompile(`\b(WHEREAS|NOW THEREFORE|IN WITNESS WHEREOF)\b`)

	usReportsCitation = regexp.MustCompile(`\b\d+\s+(U\.S\.)\s+\d+`)
	federalCitation   = regexp.MustCompile(`\b\d+\s+(F\.\d+d?)\s+\d+`)

	summaryReplacements = []struct {
		pattern *regexp.Regexp
		with    string
	}{
		{regexp.MustCompile(`\bWHEREAS\b`), "Given that"},
		{regexp.MustCompile(`\bNOW, THEREFORE\b`), "Therefore"},
		{regexp.MustCompile(`\bIN WITNESS WHEREOF\b`), "In confirmation"},
	}
)

// CollapseWhitespace replaces every whitespace run with a single space
func CollapseWhitespace(text string) string {
	return whitespaceRun.ReplaceAllString(text, " ")
}

// NormalizeForKeywords prepares text for keyword and phrase extraction
func NormalizeForKeywords(text string) string {
	text = CollapseWhitespace(text)
	text = boilerplateUpper.ReplaceAllStringFunc(text, strings.ToLower)
	return strings.TrimSpace(text)
}

// NormalizeForSummary prepares text for summarization.
// Reporter citations become [CITATION] and recital boilerplate is reworded.
func NormalizeForSummary(text string) string {
	text = CollapseWhitespace(text)
	text = usReportsCitation.ReplaceAllString(text, "[CITATION]")
	text = federalCitation.ReplaceAllString(text, "[CITATION]")
	for _, r := range summaryReplacements {
		text = r.pattern.ReplaceAllString(text, r.with)
	}
	return strings.TrimSpace(text)
}

// SplitSentences splits on runs of . ! ? and returns the trimmed, non-empty fragments
func SplitSentences(text string) []string {
	return splitNonEmpty(sentenceBreak, text)
}

// SplitParagraphs splits on blank lines and returns the trimmed, non-empty blocks
func SplitParagraphs(text string) []string {
	return splitNonEmpty(paragraphBreak, text)
}

func splitNonEmpty(sep *regexp.Regexp, text string) []string {
	parts := sep.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CountWords counts whitespace-delimited words
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountSentences counts non-blank sentence fragments
func CountSentences(text string) int {
	return len(SplitSentences(text))
}

// SplitWords splits text into whitespace-delimited words
func SplitWords(text string) []string {
	return strings.Fields(text)
}

// Windows splits text into consecutive spans of at most size words.
// Each span is the words joined by a single space.
func Windows(text string, size int) []string {
	words := strings.Fields(text)
	if size <= 0 || len(words) == 0 {
		return nil
	}
	spans := make([]string, 0, (len(words)+size-1)/size)
	for i := 0; i < len(words); i += size {
		end := min(i+size, len(words))
		spans = append(spans, strings.Join(words[i:end], " "))
	}
	return spans
}

// Stats computes the document information shown before analysis
func Stats(text string) model.DocumentStats {
	return model.DocumentStats{
		Words:      CountWords(text),
		Characters: utf8.RuneCountInString(text),
		Sentences:  CountSentences(text),
		Paragraphs: len(SplitParagraphs(text)),
	}
}
