// Package segment splits documents into overlapping windows of words,
// sentences or paragraphs.
package segment

import (
	"fmt"
	"strings"

	"github.com/ppiankov/lexscan/internal/model"
	"github.com/ppiankov/lexscan/internal/textproc"
)

// Options controls how a document is segmented
type Options struct {
	Method  model.ChunkMethod
	Size    int // Units per chunk
	Overlap int // Units shared by consecutive chunks
}

// DefaultOptions returns 200-word chunks with a 20-word overlap
func DefaultOptions() Options {
	return Options{Method: model.ChunkByWords, Size: 200, Overlap: 20}
}

// Validate rejects impossible windows instead of clamping them
func (o Options) Validate() error {
	if _, err := model.ParseChunkMethod(string(o.Method)); err != nil {
		return err
	}
	if o.Size <= 0 {
		return &model.ConfigError{Field: "size", Reason: fmt.Sprintf("must be > 0 (got %d)", o.Size)}
	}
	if o.Overlap < 0 {
		return &model.ConfigError{Field: "overlap", Reason: fmt.Sprintf("must be >= 0 (got %d)", o.Overlap)}
	}
	if o.Overlap >= o.Size {
		return &model.ConfigError{Field: "overlap", Reason: fmt.Sprintf("must be smaller than size %d (got %d)", o.Size, o.Overlap)}
	}
	return nil
}

// Segment splits text into chunks.
// Windows start every Size-Overlap units; the last window may be shorter.
func Segment(text string, opts Options) ([]model.Chunk, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	units := splitUnits(text, opts.Method)
	step := opts.Size - opts.Overlap

	var chunks []model.Chunk
	for start := 0; start < len(units); start += step {
		end := min(start+opts.Size, len(units))
		window := units[start:end]

		content := strings.TrimSpace(joinUnits(window, opts.Method))
		if content == "" {
			continue
		}

		chunk := model.Chunk{
			ID:         len(chunks) + 1,
			Content:    content,
			StartIndex: start,
			EndIndex:   start + len(window),
		}

		switch opts.Method {
		case model.ChunkByWords:
			chunk.WordCount = len(window)
			chunk.SentenceCount = textproc.CountSentences(content)
		case model.ChunkBySentences:
			chunk.WordCount = textproc.CountWords(content)
			chunk.SentenceCount = len(window)
		case model.ChunkByParagraphs:
			chunk.WordCount = textproc.CountWords(content)
			chunk.SentenceCount = textproc.CountSentences(content)
			chunk.ParagraphCount = len(window)
		}

		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

func splitUnits(text string, method model.ChunkMethod) []string {
	switch method {
	case model.ChunkBySentences:
		return textproc.SplitSentences(text)
	case model.ChunkByParagraphs:
		return textproc.SplitParagraphs(text)
	default:
		return textproc.SplitWords(text)
	}
}

func joinUnits(units []string, method model.ChunkMethod) string {
	switch method {
	case model.ChunkBySentences:
		return strings.Join(units, ". ") + "."
	case model.ChunkByParagraphs:
		return strings.Join(units, "\n\n")
	default:
		return strings.Join(units, " ")
	}
}
