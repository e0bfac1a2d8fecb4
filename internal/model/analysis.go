package model

import "time"

// DocumentStats describes the raw input document
type DocumentStats struct {
	Words      int `json:"words" yaml:"words"`
	Characters int `json:"characters" yaml:"characters"`
	Sentences  int `json:"sentences" yaml:"sentences"`
	Paragraphs int `json:"paragraphs" yaml:"paragraphs"`
}

// Analysis is the combined result of chunking, keyword extraction and summarization
type Analysis struct {
	ID        string                   `json:"id" yaml:"id"`
	Source    string                   `json:"source,omitempty" yaml:"source,omitempty"` // File name or label, if known
	CreatedAt time.Time                `json:"created_at" yaml:"created_at"`
	Document  DocumentStats            `json:"document" yaml:"document"`
	Chunks    []Chunk                  `json:"chunks" yaml:"chunks"`
	Keywords  *KeywordExtractionResult `json:"keywords" yaml:"keywords"`
	Summary   *SummaryResult           `json:"summary,omitempty" yaml:"summary,omitempty"` // Nil for empty documents
}
