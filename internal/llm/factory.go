package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// NewProvider creates a new LLM provider based on configuration.
// An empty provider name returns nil, nil (LLM disabled).
func NewProvider(ctx context.Context, config Config) (Provider, error) {
	var (
		p   Provider
		err error
	)

	switch strings.ToLower(config.Provider) {
	case "openai":
		p, err = NewOpenAIProvider(config)

	case "anthropic", "claude":
		p, err = NewAnthropicProvider(config)

	case "ollama":
		p, err = NewOllamaProvider(config)

	case "gemini", "google":
		p, err = NewGeminiProvider(ctx, config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama, gemini)", config.Provider)
	}

	// Never return a typed nil inside the interface
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyEnv fills in credentials from the provider's conventional
// environment variables when the config leaves them empty
func ApplyEnv(config Config) Config {
	if config.APIKey == "" {
		switch strings.ToLower(config.Provider) {
		case "openai":
			config.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			config.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		case "gemini", "google":
			config.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
	if config.BaseURL == "" && strings.EqualFold(config.Provider, "ollama") {
		config.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
	return config
}
