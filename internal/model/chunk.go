package model

// ChunkMethod selects the unit a document is split into before windowing
type ChunkMethod string

const (
	ChunkByWords      ChunkMethod = "words"      // Whitespace-delimited tokens
	ChunkBySentences  ChunkMethod = "sentences"  // Runs of text between . ! ?
	ChunkByParagraphs ChunkMethod = "paragraphs" // Blocks separated by blank lines
)

// ParseChunkMethod validates a method name
func ParseChunkMethod(s string) (ChunkMethod, error) {
	switch m := ChunkMethod(s); m {
	case ChunkByWords, ChunkBySentences, ChunkByParagraphs:
		return m, nil
	default:
		return "", &ConfigError{Field: "method", Reason: "must be one of words, sentences, paragraphs (got " + s + ")"}
	}
}

// Chunk is a contiguous window of units taken from a document
type Chunk struct {
	ID             int    `json:"id" yaml:"id"`                                             // Sequential, starting at 1
	Content        string `json:"content" yaml:"content"`                                   // Units re-joined with the method's separator
	WordCount      int    `json:"word_count" yaml:"word_count"`                             // Words in Content
	SentenceCount  int    `json:"sentence_count" yaml:"sentence_count"`                     // Sentence fragments in Content
	ParagraphCount int    `json:"paragraph_count,omitempty" yaml:"paragraph_count,omitempty"` // Only set for the paragraphs method
	StartIndex     int    `json:"start_index" yaml:"start_index"`                           // First unit offset (inclusive)
	EndIndex       int    `json:"end_index" yaml:"end_index"`                               // Last unit offset (exclusive)
}
