package model

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to be valid, got %v", err)
	}
	if cfg.Chunking.Size != 200 || cfg.Chunking.Overlap != 20 {
		t.Errorf("Expected chunking 200/20, got %d/%d", cfg.Chunking.Size, cfg.Chunking.Overlap)
	}
	if cfg.Keywords.MinFrequency != 2 || cfg.Keywords.MaxKeywords != 50 || cfg.Keywords.MaxPhrases != 20 {
		t.Errorf("Unexpected keyword defaults: %+v", cfg.Keywords)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero size", func(c *Config) { c.Chunking.Size = 0 }},
		{"negative overlap", func(c *Config) { c.Chunking.Overlap = -1 }},
		{"overlap equals size", func(c *Config) { c.Chunking.Overlap = c.Chunking.Size }},
		{"unknown method", func(c *Config) { c.Chunking.Method = "lines" }},
		{"zero min frequency", func(c *Config) { c.Keywords.MinFrequency = 0 }},
		{"zero max keywords", func(c *Config) { c.Keywords.MaxKeywords = 0 }},
		{"unknown summary type", func(c *Config) { c.Summary.Type = "neural" }},
		{"unknown length", func(c *Config) { c.Summary.Length = "huge" }},
		{"zero workers", func(c *Config) { c.Concurrency.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Expected *ConfigError in chain, got %T", err)
			}
		})
	}
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Config
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Capabilities.CacheTTL != DefaultConfig().Capabilities.CacheTTL {
		t.Errorf("Expected cache TTL to survive YAML, got %v", decoded.Capabilities.CacheTTL)
	}
	if decoded.Server.Addr != ":8080" {
		t.Errorf("Expected addr :8080, got %q", decoded.Server.Addr)
	}
}

func TestSummaryLength_Tier(t *testing.T) {
	tests := []struct {
		length    SummaryLength
		sentences int
		words     int
	}{
		{LengthShort, 3, 80},
		{LengthMedium, 5, 150},
		{LengthLong, 8, 250},
	}

	for _, tt := range tests {
		tier := tt.length.Tier()
		if tier.Sentences != tt.sentences || tier.Words != tt.words {
			t.Errorf("%s: expected %d/%d, got %d/%d", tt.length, tt.sentences, tt.words, tier.Sentences, tier.Words)
		}
	}
}

func TestParseHelpers_RejectUnknown(t *testing.T) {
	if _, err := ParseChunkMethod("tokens"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected config error for method, got %v", err)
	}
	if _, err := ParseSummaryType("hybrid"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected config error for type, got %v", err)
	}
	if _, err := ParseSummaryLength("tiny"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected config error for length, got %v", err)
	}
	if m, err := ParseChunkMethod("paragraphs"); err != nil || m != ChunkByParagraphs {
		t.Errorf("Expected paragraphs, got %q (%v)", m, err)
	}
}
