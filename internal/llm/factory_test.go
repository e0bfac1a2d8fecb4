package llm

import (
	"context"
	"net/http"
	"testing"

	"github.com/ppiankov/lexscan/internal/model"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{"disabled", Config{}, "", true, false},
		{"openai", Config{Provider: "openai", APIKey: "k"}, "openai", false, false},
		{"claude alias", Config{Provider: "Claude", APIKey: "k"}, "anthropic", false, false},
		{"ollama", Config{Provider: "ollama"}, "ollama", false, false},
		{"gemini missing key", Config{Provider: "gemini"}, "", true, true},
		{"openai missing key", Config{Provider: "openai"}, "", true, true},
		{"unknown", Config{Provider: "watson"}, "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if tt.wantNil {
				if p != nil {
					t.Errorf("Expected nil provider, got %s", p.Name())
				}
				return
			}
			if p == nil || p.Name() != tt.wantName {
				t.Errorf("Expected provider %s, got %v", tt.wantName, p)
			}
		})
	}
}

func TestConfigFromModel(t *testing.T) {
	c := ConfigFromModel(model.LLMConfig{
		Provider:   "ollama",
		Model:      "mistral",
		BaseURL:    "http://gpu:11434",
		Timeout:    90,
		MaxTokens:  512,
		HTTPSProxy: "http://proxy:3128",
	})

	if c.Provider != "ollama" || c.Model != "mistral" || c.BaseURL != "http://gpu:11434" {
		t.Errorf("Unexpected config: %+v", c)
	}
	if c.Timeout != 90 || c.MaxTokens != 512 || c.HTTPSProxy != "http://proxy:3128" {
		t.Errorf("Unexpected config: %+v", c)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434")

	if c := ApplyEnv(Config{Provider: "anthropic"}); c.APIKey != "env-key" {
		t.Errorf("Expected key from env, got %q", c.APIKey)
	}
	if c := ApplyEnv(Config{Provider: "anthropic", APIKey: "explicit"}); c.APIKey != "explicit" {
		t.Errorf("Expected explicit key to win, got %q", c.APIKey)
	}
	if c := ApplyEnv(Config{Provider: "ollama"}); c.BaseURL != "http://ollama:11434" {
		t.Errorf("Expected base URL from env, got %q", c.BaseURL)
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Provider != "" {
		t.Errorf("Expected LLM disabled by default, got %q", c.Provider)
	}
	if c.Timeout != 30 || c.MaxTokens != 1000 {
		t.Errorf("Unexpected defaults: %+v", c)
	}
}

func TestProxyFunc(t *testing.T) {
	proxy := newProxyFunc("http://plain:8080", "http://secure:8443", "localhost,.internal")

	tests := []struct {
		url  string
		want string
	}{
		{"https://api.openai.com/v1", "http://secure:8443"},
		{"http://example.com/", "http://plain:8080"},
		{"http://localhost:11434/api/tags", ""},
		{"http://gpu.internal:11434/api/tags", ""},
	}

	for _, tt := range tests {
		req, _ := http.NewRequest(http.MethodGet, tt.url, nil)
		got, err := proxy(req)
		if err != nil {
			t.Fatalf("Unexpected error for %s: %v", tt.url, err)
		}
		if tt.want == "" {
			if got != nil {
				t.Errorf("Expected no proxy for %s, got %v", tt.url, got)
			}
			continue
		}
		if got == nil || got.String() != tt.want {
			t.Errorf("Expected proxy %s for %s, got %v", tt.want, tt.url, got)
		}
	}
}
