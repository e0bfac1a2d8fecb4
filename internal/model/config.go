package model

import (
	"errors"
	"fmt"
	"time"
)

// Config is the complete lexscan configuration
type Config struct {
	Chunking     ChunkingConfig    `yaml:"chunking" mapstructure:"chunking"`
	Keywords     KeywordConfig     `yaml:"keywords" mapstructure:"keywords"`
	Summary      SummaryConfig     `yaml:"summary" mapstructure:"summary"`
	LLM          LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Capabilities CapabilityConfig  `yaml:"capabilities" mapstructure:"capabilities"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Server       ServerConfig      `yaml:"server" mapstructure:"server"`
	Logging      LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
}

// ChunkingConfig holds segmentation defaults
type ChunkingConfig struct {
	Method  string `yaml:"method" mapstructure:"method"`   // words, sentences, paragraphs
	Size    int    `yaml:"size" mapstructure:"size"`       // Units per chunk
	Overlap int    `yaml:"overlap" mapstructure:"overlap"` // Units shared by consecutive chunks
}

// KeywordConfig holds keyword and phrase extraction defaults
type KeywordConfig struct {
	MinFrequency int `yaml:"min_frequency" mapstructure:"min_frequency"`
	MaxKeywords  int `yaml:"max_keywords" mapstructure:"max_keywords"`
	MaxPhrases   int `yaml:"max_phrases" mapstructure:"max_phrases"`
}

// SummaryConfig holds summarization defaults
type SummaryConfig struct {
	Type   string `yaml:"type" mapstructure:"type"`     // extractive, abstractive
	Length string `yaml:"length" mapstructure:"length"` // short, medium, long
}

// LLMConfig configures the provider backing the external capabilities
type LLMConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, gemini, "" (disabled)
	Model      string `yaml:"model" mapstructure:"model"`
	APIKey     string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL    string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout    int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CapabilityConfig toggles the optional neural passes and their guards
type CapabilityConfig struct {
	NER               bool          `yaml:"ner" mapstructure:"ner"`
	Abstractive       bool          `yaml:"abstractive" mapstructure:"abstractive"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"` // Per call, before falling back
	CacheEnabled      bool          `yaml:"cache_enabled" mapstructure:"cache_enabled"`
	CacheTTL          time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
}

// ConcurrencyConfig controls worker pools
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`

	// Per client IP on /v1 routes; a non-positive rate disables limiting
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Env   string `yaml:"env" mapstructure:"env"`     // prod, dev, local
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
}

// OutputConfig controls report output
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Chunking: ChunkingConfig{
			Method:  string(ChunkByWords),
			Size:    200,
			Overlap: 20,
		},
		Keywords: KeywordConfig{
			MinFrequency: 2,
			MaxKeywords:  50,
			MaxPhrases:   20,
		},
		Summary: SummaryConfig{
			Type:   string(SummaryExtractive),
			Length: string(LengthMedium),
		},
		LLM: LLMConfig{
			Provider:  "", // Disabled by default
			Timeout:   30,
			MaxTokens: 1000,
		},
		Capabilities: CapabilityConfig{
			Timeout:           45 * time.Second,
			CacheEnabled:      true,
			CacheTTL:          time.Hour,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute,
			MaxBodyBytes: 10 << 20,

			RequestsPerSecond: 10,
			Burst:             20,
		},
		Logging: LoggingConfig{
			Env:   "local",
			Level: "warn",
		},
		Output: OutputConfig{
			Dir: "./lexscan-reports",
		},
	}
}

// Validate checks every section and joins all problems found
func (c *Config) Validate() error {
	var errs []error

	if _, err := ParseChunkMethod(c.Chunking.Method); err != nil {
		errs = append(errs, err)
	}
	if c.Chunking.Size <= 0 {
		errs = append(errs, &ConfigError{Field: "chunking.size", Reason: "must be > 0"})
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		errs = append(errs, &ConfigError{Field: "chunking.overlap", Reason: fmt.Sprintf("must be in [0, %d)", c.Chunking.Size)})
	}
	if c.Keywords.MinFrequency < 1 {
		errs = append(errs, &ConfigError{Field: "keywords.min_frequency", Reason: "must be >= 1"})
	}
	if c.Keywords.MaxKeywords <= 0 {
		errs = append(errs, &ConfigError{Field: "keywords.max_keywords", Reason: "must be > 0"})
	}
	if c.Keywords.MaxPhrases <= 0 {
		errs = append(errs, &ConfigError{Field: "keywords.max_phrases", Reason: "must be > 0"})
	}
	if _, err := ParseSummaryType(c.Summary.Type); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseSummaryLength(c.Summary.Length); err != nil {
		errs = append(errs, err)
	}
	if c.Concurrency.Workers <= 0 {
		errs = append(errs, &ConfigError{Field: "concurrency.workers", Reason: "must be > 0"})
	}
	if c.Capabilities.RequestsPerSecond < 0 {
		errs = append(errs, &ConfigError{Field: "capabilities.requests_per_second", Reason: "must be >= 0"})
	}

	return errors.Join(errs...)
}
